// Package docs registers the OpenAPI description served under /swagger.
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
        "/auth/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register a new user",
                "parameters": [
                    {"description": "User registration details", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.registerRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.authResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Log in and receive a JWT",
                "parameters": [
                    {"description": "Login credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.loginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.authResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/v1/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Current user",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.User"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/v1/time-slots": {
            "get": {
                "produces": ["application/json"],
                "tags": ["time-slots"],
                "summary": "Available slots on a calendar day",
                "parameters": [
                    {"type": "string", "description": "Calendar day (YYYY-MM-DD)", "name": "date", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.timeSlotListResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["time-slots"],
                "summary": "Create a time slot",
                "parameters": [
                    {"description": "Slot start and duration in minutes", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.createTimeSlotRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.TimeSlot"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/v1/time-slots/{id}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["time-slots"],
                "summary": "Delete an own time slot",
                "parameters": [
                    {"type": "integer", "description": "Time slot id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/v1/dentist/time-slots": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["time-slots"],
                "summary": "The caller's own slots",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.TimeSlot"}}}
                }
            }
        },
        "/v1/appointments": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["appointments"],
                "summary": "Book a time slot",
                "parameters": [
                    {"type": "string", "description": "Replays the earlier booking made with the same key", "name": "Idempotency-Key", "in": "header"},
                    {"description": "Slot to book", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.bookAppointmentRequest"}}
                ],
                "responses": {
                    "200": {"description": "replayed booking", "schema": {"$ref": "#/definitions/handler.appointmentResponse"}},
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.appointmentResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/v1/appointments/{id}/cancel": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["appointments"],
                "summary": "Cancel an appointment",
                "parameters": [
                    {"type": "integer", "description": "Appointment id", "name": "id", "in": "path", "required": true},
                    {"description": "Optional slot check", "name": "body", "in": "body", "schema": {"$ref": "#/definitions/handler.appointmentActionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.messageResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/v1/appointments/{id}/confirm": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["appointments"],
                "summary": "Confirm a pending appointment",
                "parameters": [
                    {"type": "integer", "description": "Appointment id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.messageResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/v1/appointments/{id}/reject": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["appointments"],
                "summary": "Reject a pending appointment",
                "parameters": [
                    {"type": "integer", "description": "Appointment id", "name": "id", "in": "path", "required": true},
                    {"description": "Optional slot check", "name": "body", "in": "body", "schema": {"$ref": "#/definitions/handler.appointmentActionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.messageResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/v1/appointments/{id}/events": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["appointments"],
                "summary": "Audit trail of an appointment",
                "parameters": [
                    {"type": "integer", "description": "Appointment id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.AppointmentEvent"}}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/v1/patient/appointments": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["appointments"],
                "summary": "List the caller's appointments",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.AppointmentDetail"}}}
                }
            }
        },
        "/v1/dentist/appointments": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["appointments"],
                "summary": "List appointments on the caller's slots",
                "parameters": [
                    {"type": "string", "description": "pending, confirmed, cancelled or rejected", "name": "status", "in": "query"},
                    {"type": "string", "description": "Calendar day of the slot (YYYY-MM-DD)", "name": "date", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.AppointmentDetail"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.User": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "role": {"type": "string", "enum": ["admin", "patient"]},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "domain.UserRef": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "email": {"type": "string"}
            }
        },
        "domain.TimeSlot": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "dentist_id": {"type": "integer"},
                "start_time": {"type": "string"},
                "end_time": {"type": "string"},
                "duration": {"type": "integer"},
                "is_available": {"type": "boolean"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "domain.TimeSlotWithDentist": {
            "allOf": [
                {"$ref": "#/definitions/domain.TimeSlot"},
                {"type": "object", "properties": {"dentist": {"$ref": "#/definitions/domain.UserRef"}}}
            ]
        },
        "domain.Appointment": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "time_slot_id": {"type": "integer"},
                "patient_id": {"type": "integer"},
                "status": {"type": "string", "enum": ["pending", "confirmed", "cancelled", "rejected"]},
                "notes": {"type": "string"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "domain.AppointmentDetail": {
            "allOf": [
                {"$ref": "#/definitions/domain.Appointment"},
                {
                    "type": "object",
                    "properties": {
                        "time_slot": {"$ref": "#/definitions/domain.TimeSlot"},
                        "dentist": {"$ref": "#/definitions/domain.UserRef"},
                        "patient": {"$ref": "#/definitions/domain.UserRef"}
                    }
                }
            ]
        },
        "domain.AppointmentEvent": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "appointment_id": {"type": "integer"},
                "time_slot_id": {"type": "integer"},
                "actor_id": {"type": "integer"},
                "actor_role": {"type": "string"},
                "action": {"type": "string"},
                "from_status": {"type": "string"},
                "to_status": {"type": "string"},
                "occurred_at": {"type": "string"}
            }
        },
        "handler.errorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "handler.messageResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}}
        },
        "handler.registerRequest": {
            "type": "object",
            "required": ["email", "name", "password", "role"],
            "properties": {
                "name": {"type": "string", "maxLength": 100, "minLength": 2},
                "email": {"type": "string"},
                "password": {"type": "string", "maxLength": 72, "minLength": 6},
                "role": {"type": "string", "enum": ["admin", "patient"]}
            }
        },
        "handler.loginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"},
                "role": {"type": "string", "enum": ["admin", "patient"]}
            }
        },
        "handler.authResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "user": {"$ref": "#/definitions/domain.User"}
            }
        },
        "handler.createTimeSlotRequest": {
            "type": "object",
            "required": ["duration", "start_time"],
            "properties": {
                "start_time": {"type": "string"},
                "duration": {"type": "integer", "maximum": 120, "minimum": 5}
            }
        },
        "handler.timeSlotListResponse": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "slots": {"type": "array", "items": {"$ref": "#/definitions/domain.TimeSlotWithDentist"}}
            }
        },
        "handler.bookAppointmentRequest": {
            "type": "object",
            "required": ["time_slot_id"],
            "properties": {
                "time_slot_id": {"type": "integer"},
                "notes": {"type": "string", "maxLength": 500}
            }
        },
        "handler.appointmentActionRequest": {
            "type": "object",
            "properties": {"time_slot_id": {"type": "integer"}}
        },
        "handler.appointmentResponse": {
            "allOf": [
                {"$ref": "#/definitions/domain.Appointment"},
                {
                    "type": "object",
                    "properties": {
                        "_links": {
                            "type": "object",
                            "properties": {
                                "self": {"type": "string"},
                                "events": {"type": "string"}
                            }
                        }
                    }
                }
            ]
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and the JWT.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Dental Booking API",
	Description:      "Time slots and appointments between dentists and patients.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
