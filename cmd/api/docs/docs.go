// Package docs registers the OpenAPI document served under /swagger. It is
// maintained by hand alongside the handler annotations.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/auth/check": {
            "get": {
                "description": "Resolves the session cookie, bearer token or token query parameter. Never returns 401.",
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Check authentication",
                "parameters": [
                    {"type": "string", "description": "Fallback token", "name": "token", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.AuthCheckResponse"}}
                }
            }
        },
        "/auth/google": {
            "get": {
                "description": "Redirects the user to Google's OAuth2 consent page.",
                "tags": ["auth"],
                "summary": "Initiate Google Login",
                "responses": {
                    "302": {"description": "Redirects to Google", "schema": {"type": "string"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/auth/google/callback": {
            "get": {
                "description": "Establishes the session cookie, issues the fallback token and redirects to the client.",
                "tags": ["auth"],
                "summary": "Google OAuth2 Callback",
                "parameters": [
                    {"type": "string", "description": "Authorization code from Google", "name": "code", "in": "query", "required": true},
                    {"type": "string", "description": "Signed state issued by /auth/google", "name": "state", "in": "query", "required": true}
                ],
                "responses": {
                    "302": {"description": "Redirects to {clientUrl}/dsa?token=... or {clientUrl}/login?error=auth_failed", "schema": {"type": "string"}}
                }
            }
        },
        "/auth/logout": {
            "get": {
                "description": "Destroys the session, expires the cookie and revokes any presented token.",
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Logout user",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.MessageResponse"}},
                    "500": {"description": "Logout failed", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            },
            "post": {
                "description": "Destroys the session, expires the cookie and revokes any presented token.",
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Logout user",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.MessageResponse"}},
                    "500": {"description": "Logout failed", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/auth/token/{token}": {
            "get": {
                "description": "Returns the user the token was issued to.",
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Verify token",
                "parameters": [
                    {"type": "string", "description": "Fallback token", "name": "token", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.AuthCheckResponse"}},
                    "401": {"description": "Unknown or expired token", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/problems/add-problem": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Returns the cached problem or fetches it from LeetCode / GeeksforGeeks.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["problems"],
                "summary": "Resolve a catalog problem",
                "parameters": [
                    {"description": "Problem reference", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.AddProblemRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ProblemEnvelope"}},
                    "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}},
                    "404": {"description": "Not found upstream", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}},
                    "502": {"description": "Upstream failure", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/problems/stats": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["problems"],
                "summary": "Tracking statistics",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.StatsEnvelope"}}
                }
            }
        },
        "/problems/user-problems": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["problems"],
                "summary": "List tracked problems",
                "parameters": [
                    {"type": "string", "description": "Todo or Completed", "name": "status", "in": "query"},
                    {"type": "string", "description": "Easy, Medium or Hard", "name": "difficulty", "in": "query"},
                    {"type": "string", "description": "leetcode or gfg", "name": "platform", "in": "query"},
                    {"type": "string", "description": "Case-insensitive title substring", "name": "search", "in": "query"},
                    {"type": "string", "description": "Solved on or after (YYYY-MM-DD)", "name": "dateFrom", "in": "query"},
                    {"type": "string", "description": "Solved on or before (YYYY-MM-DD)", "name": "dateTo", "in": "query"},
                    {"type": "integer", "description": "Page number (default 1)", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Items per page (default 10, max 100)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.UserProblemsResponse"}},
                    "400": {"description": "Invalid filters", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["problems"],
                "summary": "Track a problem",
                "parameters": [
                    {"description": "Problem to track", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.AddUserProblemRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.UserProblemEnvelope"}},
                    "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}},
                    "409": {"description": "Already tracked", "schema": {"$ref": "#/definitions/dto.AlreadyTrackedResponse"}}
                }
            }
        },
        "/problems/user-problems/{id}": {
            "put": {
                "security": [{"ApiKeyAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["problems"],
                "summary": "Update a tracked problem",
                "parameters": [
                    {"type": "string", "description": "Tracking record id", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UpdateUserProblemRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.UserProblemEnvelope"}},
                    "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["problems"],
                "summary": "Delete a tracked problem",
                "parameters": [
                    {"type": "string", "description": "Tracking record id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.MessageResponse"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/problems/user-problems/{id}/revisions": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["revisions"],
                "summary": "Add a revision",
                "parameters": [
                    {"type": "string", "description": "Tracking record id", "name": "id", "in": "path", "required": true},
                    {"description": "Revision notes", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.RevisionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.UserProblemEnvelope"}},
                    "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/problems/user-problems/{id}/revisions/{revisionNo}": {
            "put": {
                "security": [{"ApiKeyAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["revisions"],
                "summary": "Update a revision",
                "parameters": [
                    {"type": "string", "description": "Tracking record id", "name": "id", "in": "path", "required": true},
                    {"type": "integer", "description": "Revision number", "name": "revisionNo", "in": "path", "required": true},
                    {"description": "Revision notes", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.RevisionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.UserProblemEnvelope"}},
                    "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}},
                    "404": {"description": "Record or revision not found", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["revisions"],
                "summary": "Delete a revision",
                "parameters": [
                    {"type": "string", "description": "Tracking record id", "name": "id", "in": "path", "required": true},
                    {"type": "integer", "description": "Revision number", "name": "revisionNo", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.UserProblemEnvelope"}},
                    "400": {"description": "Invalid revision number", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}},
                    "404": {"description": "Record not found", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/user/profile": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Retrieves the profile information of the logged-in user.",
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Get My Profile",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.UserResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}},
                    "404": {"description": "User not found", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Updates name and profilePicture. Omitted fields are left unchanged.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Update My Profile",
                "parameters": [
                    {"description": "Profile fields", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UpdateProfileRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.UserResponse"}},
                    "400": {"description": "Invalid request body", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "dto.AddProblemRequest": {
            "type": "object",
            "properties": {
                "platform": {"type": "string"},
                "titleSlug": {"type": "string"}
            }
        },
        "dto.AddUserProblemRequest": {
            "type": "object",
            "properties": {
                "date_solved": {"type": "string"},
                "notes": {"type": "string"},
                "platform": {"type": "string"},
                "status": {"type": "string"},
                "titleSlug": {"type": "string"}
            }
        },
        "dto.AlreadyTrackedResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "error": {"type": "string"},
                "userProblem": {"$ref": "#/definitions/dto.UserProblemResponse"}
            }
        },
        "dto.AuthCheckResponse": {
            "type": "object",
            "properties": {
                "authenticated": {"type": "boolean"},
                "method": {"type": "string"},
                "user": {"$ref": "#/definitions/dto.UserResponse"}
            }
        },
        "dto.MessageResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"}
            }
        },
        "dto.PaginationInfo": {
            "type": "object",
            "properties": {
                "currentPage": {"type": "integer"},
                "itemsPerPage": {"type": "integer"},
                "totalItems": {"type": "integer"},
                "totalPages": {"type": "integer"}
            }
        },
        "dto.ProblemEnvelope": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "problem": {"$ref": "#/definitions/dto.ProblemResponse"}
            }
        },
        "dto.ProblemResponse": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "content": {"type": "string"},
                "createdAt": {"type": "string"},
                "difficulty": {"type": "string"},
                "platform": {"type": "string"},
                "problemUrl": {"type": "string"},
                "questionId": {"type": "string"},
                "title": {"type": "string"},
                "titleSlug": {"type": "string"},
                "topicTags": {"type": "array", "items": {"$ref": "#/definitions/dto.TopicTagResponse"}},
                "updatedAt": {"type": "string"}
            }
        },
        "dto.RevisionRequest": {
            "type": "object",
            "properties": {
                "revision_notes": {"type": "string"}
            }
        },
        "dto.RevisionResponse": {
            "type": "object",
            "properties": {
                "revision_date": {"type": "string"},
                "revision_no": {"type": "integer"},
                "revision_notes": {"type": "string"}
            }
        },
        "dto.StatsEnvelope": {
            "type": "object",
            "properties": {
                "stats": {"$ref": "#/definitions/dto.StatsResponse"}
            }
        },
        "dto.StatsResponse": {
            "type": "object",
            "properties": {
                "completedProblems": {"type": "integer"},
                "easyProblems": {"type": "integer"},
                "hardProblems": {"type": "integer"},
                "mediumProblems": {"type": "integer"},
                "todoProblems": {"type": "integer"},
                "totalProblems": {"type": "integer"},
                "totalRevisions": {"type": "integer"}
            }
        },
        "dto.TopicTagResponse": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "slug": {"type": "string"}
            }
        },
        "dto.UpdateProfileRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "profilePicture": {"type": "string"}
            }
        },
        "dto.UpdateUserProblemRequest": {
            "type": "object",
            "properties": {
                "notes": {"type": "string"},
                "problem_link": {"type": "string"},
                "status": {"type": "string"}
            }
        },
        "dto.UserProblemEnvelope": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "userProblem": {"$ref": "#/definitions/dto.UserProblemResponse"}
            }
        },
        "dto.UserProblemResponse": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "createdAt": {"type": "string"},
                "date_solved": {"type": "string"},
                "notes": {"type": "string"},
                "problemId": {"$ref": "#/definitions/dto.ProblemResponse"},
                "problem_link": {"type": "string"},
                "revision_history": {"type": "array", "items": {"$ref": "#/definitions/dto.RevisionResponse"}},
                "status": {"type": "string"},
                "updatedAt": {"type": "string"},
                "userId": {"type": "string"}
            }
        },
        "dto.UserProblemsResponse": {
            "type": "object",
            "properties": {
                "pagination": {"$ref": "#/definitions/dto.PaginationInfo"},
                "userProblems": {"type": "array", "items": {"$ref": "#/definitions/dto.UserProblemResponse"}}
            }
        },
        "dto.UserResponse": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "createdAt": {"type": "string"},
                "email": {"type": "string"},
                "googleId": {"type": "string"},
                "name": {"type": "string"},
                "profilePicture": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "middleware.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "details": {},
                "error": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "ApiKeyAuth": {
            "description": "Type 'Bearer YOUR_TOKEN' to authorize. The session cookie is accepted as well.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:5000",
	BasePath:         "/api",
	Schemes:          []string{"http", "https"},
	Title:            "trackme API",
	Description:      "Personal coding-problem tracker: Google login, a shared LeetCode / GeeksforGeeks catalog and per-user revision history.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
