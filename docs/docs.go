// Package docs registers the OpenAPI description served under /swagger/.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/token": {
            "post": {
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Получить токен доступа",
                "parameters": [
                    {"description": "Email и пароль", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.Credentials"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.tokenResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.errorBody"}}
                }
            }
        },
        "/players": {
            "get": {
                "produces": ["application/json"],
                "tags": ["players"],
                "summary": "Список игроков",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Player"}}}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["players"],
                "summary": "Зарегистрировать игрока",
                "parameters": [
                    {"description": "Имя, email и пароль", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/services.RegisterInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Player"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.errorBody"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handlers.errorBody"}}
                }
            }
        },
        "/tournaments": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["tournaments"],
                "summary": "Создать турнир",
                "parameters": [
                    {"description": "Название и тип (roundRobin | elimination)", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/services.CreateTournamentInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Tournament"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.errorBody"}}
                }
            }
        },
        "/tournaments/{tournamentID}/start": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["tournaments"],
                "summary": "Сгенерировать матчи турнира",
                "description": "Круговой турнир получает всё расписание сразу, турнир на выбывание только первую фазу.",
                "parameters": [{"type": "integer", "description": "Tournament ID", "name": "tournamentID", "in": "path", "required": true}],
                "responses": {
                    "201": {"description": "Created", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Match"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.errorBody"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.errorBody"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handlers.errorBody"}}
                }
            }
        },
        "/tournaments/{tournamentID}/next-phase": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["tournaments"],
                "summary": "Перейти к следующей фазе турнира на выбывание",
                "parameters": [{"type": "integer", "description": "Tournament ID", "name": "tournamentID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "no further phase", "schema": {"$ref": "#/definitions/services.PhaseAdvanceResult"}},
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/services.PhaseAdvanceResult"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handlers.errorBody"}}
                }
            }
        },
        "/tournaments/{tournamentID}/finish": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["tournaments"],
                "summary": "Завершить турнир и начислить бонусы",
                "parameters": [{"type": "integer", "description": "Tournament ID", "name": "tournamentID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Standing"}}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handlers.errorBody"}}
                }
            }
        },
        "/matches/{matchID}/result": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["matches"],
                "summary": "Записать результат матча",
                "description": "winner_id обязателен и для ничьей: это должен быть один из участников.",
                "parameters": [
                    {"type": "integer", "description": "Match ID", "name": "matchID", "in": "path", "required": true},
                    {"description": "Победитель и признак ничьей", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/services.RecordResultInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Match"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.errorBody"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.errorBody"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handlers.errorBody"}}
                }
            }
        },
        "/decks": {
            "get": {
                "produces": ["application/json"],
                "tags": ["decks"],
                "summary": "Список колод",
                "parameters": [
                    {"type": "integer", "description": "Только колоды этого игрока", "name": "player_id", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Deck"}}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["decks"],
                "summary": "Создать колоду текущего игрока",
                "parameters": [
                    {"description": "Название, формат, описание и список карт", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/services.DeckInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Deck"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.errorBody"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.errorBody"}}
                }
            }
        },
        "/decks/{deckID}": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["decks"],
                "summary": "Изменить колоду (только владелец)",
                "parameters": [
                    {"type": "integer", "description": "Deck ID", "name": "deckID", "in": "path", "required": true},
                    {"description": "Изменяемые поля", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/services.DeckInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Deck"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handlers.errorBody"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.errorBody"}}
                }
            }
        }
    },
    "definitions": {
        "handlers.errorBody": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "handlers.tokenResponse": {
            "type": "object",
            "properties": {
                "access_token": {"type": "string"},
                "token_type": {"type": "string"},
                "expires_at": {"type": "string", "format": "date-time"},
                "user": {"$ref": "#/definitions/models.Player"}
            }
        },
        "models.Credentials": {
            "type": "object",
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "models.Player": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "personal_score": {"type": "integer"},
                "avatar_url": {"type": "string"},
                "created_at": {"type": "string", "format": "date-time"}
            }
        },
        "models.Tournament": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "type": {"type": "string", "enum": ["roundRobin", "elimination"]},
                "status": {"type": "boolean"},
                "current_phase": {"type": "integer"},
                "created_at": {"type": "string", "format": "date-time"}
            }
        },
        "models.Match": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "tournament_id": {"type": "integer"},
                "player1_id": {"type": "integer"},
                "player2_id": {"type": "integer", "x-nullable": true},
                "phase": {"type": "integer"},
                "status": {"type": "boolean"},
                "win": {"type": "integer", "x-nullable": true},
                "draw": {"type": "boolean"}
            }
        },
        "models.Standing": {
            "type": "object",
            "properties": {
                "position": {"type": "integer"},
                "player_id": {"type": "integer"},
                "player_name": {"type": "string"},
                "final_score": {"type": "integer"}
            }
        },
        "models.Deck": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "player_id": {"type": "integer"},
                "name": {"type": "string"},
                "format": {"type": "string"},
                "description": {"type": "string"},
                "deck_list": {"type": "string"},
                "created_at": {"type": "string", "format": "date-time"}
            }
        },
        "services.DeckInput": {
            "type": "object",
            "properties": {"name": {"type": "string"}, "format": {"type": "string"}, "description": {"type": "string"}, "deck_list": {"type": "string"}}
        },
        "services.CreateTournamentInput": {
            "type": "object",
            "properties": {"name": {"type": "string"}, "type": {"type": "string", "enum": ["roundRobin", "elimination"]}}
        },
        "services.RegisterInput": {
            "type": "object",
            "properties": {"name": {"type": "string"}, "email": {"type": "string"}, "password": {"type": "string"}}
        },
        "services.RecordResultInput": {
            "type": "object",
            "properties": {"winner_id": {"type": "integer"}, "is_draw": {"type": "boolean"}}
        },
        "services.PhaseAdvanceResult": {
            "type": "object",
            "properties": {
                "tournament_id": {"type": "integer"},
                "phase": {"type": "integer"},
                "no_further_phase": {"type": "boolean"},
                "matches": {"type": "array", "items": {"$ref": "#/definitions/models.Match"}}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Magic Tournament API",
	Description:      "Турниры Magic: круговые и на выбывание, запись результатов, итоговые места.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
