package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "SIS Registration Gateway",
        "description": "Course registration orchestrator for the student portal",
        "version": "0.1.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Registration", "description": "Registration session, cart, commit and drop"},
        {"name": "Directory", "description": "Student lookup for delegated registration"}
    ],
    "paths": {
        "/registration/session": {
            "get": {
                "tags": ["Registration"],
                "summary": "Current registration session",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/registration/session/refresh": {
            "post": {
                "tags": ["Registration"],
                "summary": "Re-fetch the catalog snapshot",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/registration/session/subject": {
            "post": {
                "tags": ["Registration"],
                "summary": "Attach a delegated registration subject",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SelectSubjectRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Staff role required"},
                    "404": {"description": "Student not found"}
                }
            },
            "delete": {
                "tags": ["Registration"],
                "summary": "Detach the delegated registration subject",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/registration/session/cart/items": {
            "post": {
                "tags": ["Registration"],
                "summary": "Queue a course for registration",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AddToCartRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Already enrolled or already in cart"},
                    "422": {"description": "Credit limit exceeded or prerequisites unmet"}
                }
            }
        },
        "/registration/session/cart/items/{courseId}": {
            "delete": {
                "tags": ["Registration"],
                "summary": "Remove a course from the cart",
                "parameters": [
                    {"name": "courseId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/registration/session/commit": {
            "post": {
                "tags": ["Registration"],
                "summary": "Submit the cart for registration",
                "responses": {
                    "200": {"description": "Per-item outcomes", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "412": {"description": "No subject selected"}
                }
            }
        },
        "/registration/session/drop": {
            "post": {
                "tags": ["Registration"],
                "summary": "Drop an enrollment",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/DropRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Missing confirmation"},
                    "404": {"description": "Enrollment not found"}
                }
            }
        },
        "/registration/actions": {
            "get": {
                "tags": ["Registration"],
                "summary": "List audited registration actions",
                "parameters": [
                    {"name": "actorId", "in": "query", "type": "string"},
                    {"name": "subjectId", "in": "query", "type": "string"},
                    {"name": "action", "in": "query", "type": "string"},
                    {"name": "outcome", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/search": {
            "get": {
                "tags": ["Directory"],
                "summary": "Search students for delegated registration",
                "parameters": [
                    {"name": "q", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "SelectSubjectRequest": {
            "type": "object",
            "properties": {
                "student_id": {"type": "string"}
            },
            "required": ["student_id"]
        },
        "AddToCartRequest": {
            "type": "object",
            "properties": {
                "course_id": {"type": "string"}
            },
            "required": ["course_id"]
        },
        "DropRequest": {
            "type": "object",
            "properties": {
                "enrollment_id": {"type": "string"},
                "confirm": {"type": "boolean"}
            },
            "required": ["enrollment_id"]
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
