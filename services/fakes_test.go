package services

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Dosada05/magic-tournament/models"
	"github.com/Dosada05/magic-tournament/repositories"
	"github.com/Dosada05/magic-tournament/storage"
	"github.com/stretchr/testify/require"
)

// memStore хранит общее состояние всех фейковых репозиториев.
type memStore struct {
	mu sync.Mutex

	players     map[int]models.Player
	tournaments map[int]models.Tournament
	enrollments map[int][]int // tournamentID -> playerIDs в порядке записи
	matches     map[int]models.Match
	scores      map[int]models.TournamentScore
	decks       map[int]models.Deck

	nextID int

	// failOn позволяет заставить операцию упасть, чтобы проверить откат.
	failOn map[string]error
}

func newMemStore() *memStore {
	return &memStore{
		players:     map[int]models.Player{},
		tournaments: map[int]models.Tournament{},
		enrollments: map[int][]int{},
		matches:     map[int]models.Match{},
		scores:      map[int]models.TournamentScore{},
		decks:       map[int]models.Deck{},
		failOn:      map[string]error{},
	}
}

func (s *memStore) id() int {
	s.nextID++
	return s.nextID
}

func (s *memStore) fail(op string) error {
	return s.failOn[op]
}

type memSnapshot struct {
	players     map[int]models.Player
	tournaments map[int]models.Tournament
	enrollments map[int][]int
	matches     map[int]models.Match
	scores      map[int]models.TournamentScore
	decks       map[int]models.Deck
	nextID      int
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *memStore) snapshot() memSnapshot {
	enrollments := make(map[int][]int, len(s.enrollments))
	for k, v := range s.enrollments {
		enrollments[k] = append([]int(nil), v...)
	}
	return memSnapshot{
		players:     copyMap(s.players),
		tournaments: copyMap(s.tournaments),
		enrollments: enrollments,
		matches:     copyMap(s.matches),
		scores:      copyMap(s.scores),
		decks:       copyMap(s.decks),
		nextID:      s.nextID,
	}
}

func (s *memStore) restore(snap memSnapshot) {
	s.players = snap.players
	s.tournaments = snap.tournaments
	s.enrollments = snap.enrollments
	s.matches = snap.matches
	s.scores = snap.scores
	s.decks = snap.decks
	s.nextID = snap.nextID
}

// memTransactor сериализует транзакции и откатывает состояние при ошибке.
type memTransactor struct {
	store *memStore
	txMu  sync.Mutex
}

func (t *memTransactor) WithinTx(ctx context.Context, fn func(exec repositories.SQLExecutor) error) error {
	t.txMu.Lock()
	defer t.txMu.Unlock()

	t.store.mu.Lock()
	snap := t.store.snapshot()
	t.store.mu.Unlock()

	if err := fn(nil); err != nil {
		t.store.mu.Lock()
		t.store.restore(snap)
		t.store.mu.Unlock()
		return err
	}
	return nil
}

// --- players ---

type memPlayerRepo struct{ s *memStore }

func (r *memPlayerRepo) Create(ctx context.Context, p *models.Player) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.players {
		if existing.Email == p.Email {
			return repositories.ErrPlayerEmailConflict
		}
	}
	p.ID = r.s.id()
	p.CreatedAt = time.Now()
	r.s.players[p.ID] = *p
	return nil
}

func (r *memPlayerRepo) GetByID(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Player, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.players[id]
	if !ok {
		return nil, repositories.ErrPlayerNotFound
	}
	return &p, nil
}

func (r *memPlayerRepo) GetByEmail(ctx context.Context, email string) (*models.Player, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.players {
		if p.Email == email {
			p := p
			return &p, nil
		}
	}
	return nil, repositories.ErrPlayerNotFound
}

func (r *memPlayerRepo) List(ctx context.Context) ([]models.Player, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.Player
	for _, p := range r.s.players {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memPlayerRepo) ListByTournament(ctx context.Context, exec repositories.SQLExecutor, tournamentID int) ([]models.Player, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.Player
	for _, id := range r.s.enrollments[tournamentID] {
		out = append(out, r.s.players[id])
	}
	return out, nil
}

func (r *memPlayerRepo) SetPersonalScore(ctx context.Context, id int, score int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.players[id]
	if !ok {
		return repositories.ErrPlayerNotFound
	}
	p.PersonalScore = score
	r.s.players[id] = p
	return nil
}

func (r *memPlayerRepo) AddPersonalScore(ctx context.Context, exec repositories.SQLExecutor, id int, delta int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("AddPersonalScore"); err != nil {
		return err
	}
	p, ok := r.s.players[id]
	if !ok {
		return repositories.ErrPlayerNotFound
	}
	p.PersonalScore += delta
	r.s.players[id] = p
	return nil
}

func (r *memPlayerRepo) UpdateAvatarKey(ctx context.Context, id int, avatarKey *string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.players[id]
	if !ok {
		return repositories.ErrPlayerNotFound
	}
	p.AvatarKey = avatarKey
	r.s.players[id] = p
	return nil
}

func (r *memPlayerRepo) Delete(ctx context.Context, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.players[id]; !ok {
		return repositories.ErrPlayerNotFound
	}
	for _, m := range r.s.matches {
		if m.HasParticipant(id) {
			return repositories.ErrPlayerInUse
		}
	}
	delete(r.s.players, id)
	for deckID, d := range r.s.decks {
		if d.PlayerID == id {
			delete(r.s.decks, deckID)
		}
	}
	return nil
}

// --- tournaments ---

type memTournamentRepo struct{ s *memStore }

func (r *memTournamentRepo) Create(ctx context.Context, t *models.Tournament) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t.ID = r.s.id()
	t.CreatedAt = time.Now()
	r.s.tournaments[t.ID] = *t
	return nil
}

func (r *memTournamentRepo) GetByID(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Tournament, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tournaments[id]
	if !ok {
		return nil, repositories.ErrTournamentNotFound
	}
	return &t, nil
}

func (r *memTournamentRepo) GetForUpdate(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Tournament, error) {
	return r.GetByID(ctx, exec, id)
}

func (r *memTournamentRepo) List(ctx context.Context, filter repositories.ListTournamentsFilter) ([]models.Tournament, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.Tournament
	for _, t := range r.s.tournaments {
		if filter.Type != nil && t.Type != *filter.Type {
			continue
		}
		if filter.Finished != nil && t.Status != *filter.Finished {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memTournamentRepo) update(id int, fn func(t *models.Tournament)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tournaments[id]
	if !ok {
		return repositories.ErrTournamentNotFound
	}
	fn(&t)
	r.s.tournaments[id] = t
	return nil
}

func (r *memTournamentRepo) UpdateName(ctx context.Context, id int, name string) error {
	return r.update(id, func(t *models.Tournament) { t.Name = name })
}

func (r *memTournamentRepo) UpdateCurrentPhase(ctx context.Context, exec repositories.SQLExecutor, id int, phase int) error {
	return r.update(id, func(t *models.Tournament) { t.CurrentPhase = phase })
}

func (r *memTournamentRepo) MarkFinished(ctx context.Context, exec repositories.SQLExecutor, id int) error {
	return r.update(id, func(t *models.Tournament) { t.Status = true })
}

func (r *memTournamentRepo) Delete(ctx context.Context, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.tournaments[id]; !ok {
		return repositories.ErrTournamentNotFound
	}
	delete(r.s.tournaments, id)
	delete(r.s.enrollments, id)
	for mid, m := range r.s.matches {
		if m.TournamentID == id {
			delete(r.s.matches, mid)
		}
	}
	for sid, sc := range r.s.scores {
		if sc.TournamentID == id {
			delete(r.s.scores, sid)
		}
	}
	return nil
}

func (r *memTournamentRepo) AddPlayer(ctx context.Context, exec repositories.SQLExecutor, tournamentID, playerID int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.tournaments[tournamentID]; !ok {
		return repositories.ErrEnrollmentReferenceBad
	}
	if _, ok := r.s.players[playerID]; !ok {
		return repositories.ErrEnrollmentReferenceBad
	}
	for _, id := range r.s.enrollments[tournamentID] {
		if id == playerID {
			return repositories.ErrPlayerAlreadyEnrolled
		}
	}
	r.s.enrollments[tournamentID] = append(r.s.enrollments[tournamentID], playerID)
	return nil
}

func (r *memTournamentRepo) RemovePlayer(ctx context.Context, exec repositories.SQLExecutor, tournamentID, playerID int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ids := r.s.enrollments[tournamentID]
	for i, id := range ids {
		if id == playerID {
			r.s.enrollments[tournamentID] = append(append([]int(nil), ids[:i]...), ids[i+1:]...)
			return nil
		}
	}
	return repositories.ErrPlayerNotEnrolled
}

func (r *memTournamentRepo) IsPlayerEnrolled(ctx context.Context, exec repositories.SQLExecutor, tournamentID, playerID int) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, id := range r.s.enrollments[tournamentID] {
		if id == playerID {
			return true, nil
		}
	}
	return false, nil
}

// --- matches ---

type memMatchRepo struct{ s *memStore }

func (r *memMatchRepo) Create(ctx context.Context, exec repositories.SQLExecutor, m *models.Match) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("CreateMatch"); err != nil {
		return err
	}
	m.ID = r.s.id()
	m.CreatedAt = time.Now()
	r.s.matches[m.ID] = *m
	return nil
}

func (r *memMatchRepo) GetByID(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Match, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.matches[id]
	if !ok {
		return nil, repositories.ErrMatchNotFound
	}
	return &m, nil
}

func (r *memMatchRepo) GetForUpdate(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Match, error) {
	return r.GetByID(ctx, exec, id)
}

func (r *memMatchRepo) sorted(keep func(m models.Match) bool) []*models.Match {
	var out []*models.Match
	for _, m := range r.s.matches {
		if keep(m) {
			m := m
			out = append(out, &m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Phase != out[j].Phase {
			return out[i].Phase < out[j].Phase
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (r *memMatchRepo) List(ctx context.Context) ([]*models.Match, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.sorted(func(models.Match) bool { return true }), nil
}

func (r *memMatchRepo) ListByTournament(ctx context.Context, exec repositories.SQLExecutor, tournamentID int, phase *int) ([]*models.Match, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.sorted(func(m models.Match) bool {
		return m.TournamentID == tournamentID && (phase == nil || m.Phase == *phase)
	}), nil
}

func (r *memMatchRepo) ListByPlayer(ctx context.Context, playerID int) ([]*models.Match, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.sorted(func(m models.Match) bool { return m.HasParticipant(playerID) }), nil
}

func (r *memMatchRepo) CountByTournament(ctx context.Context, exec repositories.SQLExecutor, tournamentID int, pendingOnly bool) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, m := range r.s.matches {
		if m.TournamentID == tournamentID && (!pendingOnly || !m.Status) {
			n++
		}
	}
	return n, nil
}

func (r *memMatchRepo) RecordResult(ctx context.Context, exec repositories.SQLExecutor, id int, win *int, draw bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("RecordResult"); err != nil {
		return err
	}
	m, ok := r.s.matches[id]
	if !ok {
		return repositories.ErrMatchNotFound
	}
	if m.Status {
		return repositories.ErrMatchAlreadyRecorded
	}
	m.Status = true
	m.Win = win
	m.Draw = draw
	r.s.matches[id] = m
	return nil
}

// --- scores ---

type memScoreRepo struct{ s *memStore }

func (r *memScoreRepo) Create(ctx context.Context, exec repositories.SQLExecutor, sc *models.TournamentScore) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sc.ID = r.s.id()
	r.s.scores[sc.ID] = *sc
	return nil
}

func (r *memScoreRepo) find(tournamentID, playerID int) (models.TournamentScore, bool) {
	for _, sc := range r.s.scores {
		if sc.TournamentID == tournamentID && sc.PlayerID == playerID {
			return sc, true
		}
	}
	return models.TournamentScore{}, false
}

func (r *memScoreRepo) Get(ctx context.Context, exec repositories.SQLExecutor, tournamentID, playerID int) (*models.TournamentScore, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sc, ok := r.find(tournamentID, playerID)
	if !ok {
		return nil, repositories.ErrTournamentScoreNotFound
	}
	sc.PlayerName = r.s.players[sc.PlayerID].Name
	return &sc, nil
}

func (r *memScoreRepo) AddPoints(ctx context.Context, exec repositories.SQLExecutor, tournamentID, playerID int, points int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sc, ok := r.find(tournamentID, playerID)
	if !ok {
		return repositories.ErrTournamentScoreNotFound
	}
	sc.Score += points
	r.s.scores[sc.ID] = sc
	return nil
}

func (r *memScoreRepo) list(keep func(sc models.TournamentScore) bool) []*models.TournamentScore {
	var out []*models.TournamentScore
	for _, sc := range r.s.scores {
		if keep(sc) {
			sc := sc
			sc.PlayerName = r.s.players[sc.PlayerID].Name
			out = append(out, &sc)
		}
	}
	// Как и в SQL: по очкам по убыванию, затем по id.
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (r *memScoreRepo) ListByTournament(ctx context.Context, exec repositories.SQLExecutor, tournamentID int) ([]*models.TournamentScore, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.list(func(sc models.TournamentScore) bool { return sc.TournamentID == tournamentID }), nil
}

func (r *memScoreRepo) ListByPlayer(ctx context.Context, playerID int) ([]*models.TournamentScore, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.list(func(sc models.TournamentScore) bool { return sc.PlayerID == playerID }), nil
}

func (r *memScoreRepo) Delete(ctx context.Context, exec repositories.SQLExecutor, tournamentID, playerID int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sc, ok := r.find(tournamentID, playerID)
	if !ok {
		return repositories.ErrTournamentScoreNotFound
	}
	delete(r.s.scores, sc.ID)
	return nil
}

// --- events & storage ---

type publishedEvent struct {
	TournamentID int
	Type         string
	Payload      interface{}
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *recordingPublisher) PublishTournamentEvent(tournamentID int, eventType string, payload interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{TournamentID: tournamentID, Type: eventType, Payload: payload})
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type memUploader struct {
	objects   map[string][]byte
	deleted   []string
	uploadErr error
}

func newMemUploader() *memUploader {
	return &memUploader{objects: map[string][]byte{}}
}

func (u *memUploader) Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*storage.UploadResult, error) {
	if u.uploadErr != nil {
		return nil, u.uploadErr
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	u.objects[key] = data
	return &storage.UploadResult{Key: key, Location: u.GetPublicURL(key)}, nil
}

func (u *memUploader) Delete(ctx context.Context, key string) error {
	if _, ok := u.objects[key]; !ok {
		return errors.New("object not found")
	}
	delete(u.objects, key)
	u.deleted = append(u.deleted, key)
	return nil
}

func (u *memUploader) GetPublicURL(key string) string {
	return "https://cdn.test/" + key
}

// --- decks ---

type memDeckRepo struct{ s *memStore }

func (r *memDeckRepo) Create(ctx context.Context, d *models.Deck) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("decks.Create"); err != nil {
		return err
	}
	if _, ok := r.s.players[d.PlayerID]; !ok {
		return repositories.ErrDeckOwnerInvalid
	}
	d.ID = r.s.id()
	d.CreatedAt = time.Now()
	r.s.decks[d.ID] = *d
	return nil
}

func (r *memDeckRepo) GetByID(ctx context.Context, id int) (*models.Deck, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d, ok := r.s.decks[id]
	if !ok {
		return nil, repositories.ErrDeckNotFound
	}
	return &d, nil
}

func (r *memDeckRepo) List(ctx context.Context, ownerID *int) ([]models.Deck, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.Deck
	for _, d := range r.s.decks {
		if ownerID == nil || d.PlayerID == *ownerID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memDeckRepo) Update(ctx context.Context, d *models.Deck) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.decks[d.ID]
	if !ok {
		return repositories.ErrDeckNotFound
	}
	stored.Name, stored.Format, stored.Description, stored.DeckList = d.Name, d.Format, d.Description, d.DeckList
	r.s.decks[d.ID] = stored
	return nil
}

func (r *memDeckRepo) Delete(ctx context.Context, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.decks[id]; !ok {
		return repositories.ErrDeckNotFound
	}
	delete(r.s.decks, id)
	return nil
}

// --- fixture ---

type fixture struct {
	store       *memStore
	tx          *memTransactor
	players     *memPlayerRepo
	tournaments *memTournamentRepo
	matches     *memMatchRepo
	scores      *memScoreRepo
	decks       *memDeckRepo
	events      *recordingPublisher
	uploader    *memUploader

	bracketSvc BracketService
	matchSvc   MatchService
	tournSvc   TournamentService
	playerSvc  PlayerService
	authSvc    AuthService
	deckSvc    DeckService
}

// identityShuffle оставляет порядок записи, чтобы пары были предсказуемы.
func identityShuffle(n int, swap func(i, j int)) {}

func newFixture() *fixture {
	store := newMemStore()
	f := &fixture{
		store:       store,
		tx:          &memTransactor{store: store},
		players:     &memPlayerRepo{s: store},
		tournaments: &memTournamentRepo{s: store},
		matches:     &memMatchRepo{s: store},
		scores:      &memScoreRepo{s: store},
		decks:       &memDeckRepo{s: store},
		events:      &recordingPublisher{},
		uploader:    newMemUploader(),
	}
	f.bracketSvc = NewBracketService(f.tx, f.tournaments, f.players, f.matches, f.scores, f.events, nil, identityShuffle)
	f.matchSvc = NewMatchService(f.tx, f.tournaments, f.matches, f.scores, f.events, nil)
	f.tournSvc = NewTournamentService(f.tx, f.tournaments, f.players, f.matches, f.scores, nil)
	f.playerSvc = NewPlayerService(f.players, f.matches, f.scores, f.uploader, nil)
	f.authSvc = NewAuthService(f.players, nil)
	f.deckSvc = NewDeckService(f.decks, f.players, nil)
	return f
}

func (f *fixture) addPlayer(t *testing.T, name string) *models.Player {
	t.Helper()
	p := &models.Player{Name: name, Email: strings.ToLower(name) + "@example.com"}
	require.NoError(t, f.players.Create(context.Background(), p))
	return p
}

func (f *fixture) addTournament(t *testing.T, tournamentType models.TournamentType, players ...*models.Player) *models.Tournament {
	t.Helper()
	ctx := context.Background()
	tournament, err := f.tournSvc.CreateTournament(ctx, CreateTournamentInput{Name: "Friday Draft", Type: tournamentType})
	require.NoError(t, err)
	for _, p := range players {
		_, err := f.tournSvc.EnrollPlayer(ctx, tournament.ID, p.ID)
		require.NoError(t, err)
	}
	return tournament
}

func (f *fixture) tournamentState(t *testing.T, id int) *models.Tournament {
	t.Helper()
	tournament, err := f.tournaments.GetByID(context.Background(), nil, id)
	require.NoError(t, err)
	return tournament
}

func (f *fixture) score(t *testing.T, tournamentID, playerID int) int {
	t.Helper()
	sc, err := f.scores.Get(context.Background(), nil, tournamentID, playerID)
	require.NoError(t, err)
	return sc.Score
}

func (f *fixture) personalScore(t *testing.T, playerID int) int {
	t.Helper()
	p, err := f.players.GetByID(context.Background(), nil, playerID)
	require.NoError(t, err)
	return p.PersonalScore
}

func (f *fixture) win(t *testing.T, matchID, winnerID int) {
	t.Helper()
	_, err := f.matchSvc.RecordResult(context.Background(), matchID, RecordResultInput{WinnerID: winnerID})
	require.NoError(t, err)
}

func (f *fixture) draw(t *testing.T, matchID, playerID int) {
	t.Helper()
	_, err := f.matchSvc.RecordResult(context.Background(), matchID, RecordResultInput{WinnerID: playerID, IsDraw: true})
	require.NoError(t, err)
}

func intPtr(v int) *int {
	return &v
}
