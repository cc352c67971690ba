// Package docs registers the OpenAPI description of the mock HIS API with
// swag so gin-swagger can serve it under /swagger/.
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
        "/login": {
            "post": {
                "description": "Accepts only admin / admin1234.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Authentication"],
                "summary": "Log in",
                "operationId": "login",
                "parameters": [
                    {
                        "description": "Credentials",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handlers.LoginRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"allOf": [{"$ref": "#/definitions/handlers.Envelope"}, {"type": "object", "properties": {"data": {"$ref": "#/definitions/domain.StaffProfile"}}}]}},
                    "400": {"description": "Missing username or password", "schema": {"$ref": "#/definitions/handlers.Envelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.Envelope"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/handlers.Envelope"}}
                }
            }
        },
        "/getDoctorSchedule": {
            "get": {
                "description": "Every call returns a new random doctor.",
                "produces": ["application/json"],
                "tags": ["Doctor"],
                "summary": "Random doctor with schedule",
                "operationId": "getDoctorSchedule",
                "responses": {
                    "200": {"description": "OK", "schema": {"allOf": [{"$ref": "#/definitions/handlers.Envelope"}, {"type": "object", "properties": {"data": {"$ref": "#/definitions/domain.DoctorProfile"}}}]}}
                }
            }
        },
        "/getAppointment": {
            "get": {
                "description": "Each patient's appointment is generated on first request and then stays the same for the life of the process.",
                "produces": ["application/json"],
                "tags": ["Appointment"],
                "summary": "Appointments by date",
                "operationId": "getAppointment",
                "parameters": [
                    {
                        "type": "string",
                        "example": "2025-01-10",
                        "description": "Appointment date (YYYY-MM-DD)",
                        "name": "appointmentDatetime",
                        "in": "query",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"allOf": [{"$ref": "#/definitions/handlers.Envelope"}, {"type": "object", "properties": {"data": {"type": "array", "items": {"$ref": "#/definitions/domain.Appointment"}}}}]}},
                    "400": {"description": "Missing or malformed date", "schema": {"$ref": "#/definitions/handlers.Envelope"}}
                }
            }
        },
        "/getPatient": {
            "get": {
                "description": "Finds a patient by national id, passport number, or HN.",
                "produces": ["application/json"],
                "tags": ["Patient"],
                "summary": "Patient lookup",
                "operationId": "getPatient",
                "parameters": [
                    {
                        "type": "string",
                        "example": "00-00-00001",
                        "description": "National id, passport number, or HN",
                        "name": "id",
                        "in": "query",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"allOf": [{"$ref": "#/definitions/handlers.Envelope"}, {"type": "object", "properties": {"data": {"$ref": "#/definitions/domain.Patient"}}}]}},
                    "400": {"description": "Missing id parameter", "schema": {"$ref": "#/definitions/handlers.Envelope"}},
                    "404": {"description": "Patient does not exist", "schema": {"$ref": "#/definitions/handlers.Envelope"}}
                }
            }
        }
    },
    "definitions": {
        "handlers.Envelope": {
            "type": "object",
            "properties": {
                "statusCode": {"type": "integer", "example": 200},
                "message": {"type": "string", "example": "Success"},
                "description": {"type": "string", "example": ""},
                "data": {}
            }
        },
        "handlers.LoginRequest": {
            "type": "object",
            "properties": {
                "username": {"type": "string", "example": "admin"},
                "password": {"type": "string", "example": "admin1234"}
            }
        },
        "domain.Location": {
            "type": "object",
            "properties": {
                "locationId": {"type": "string"},
                "locationName": {"type": "string"},
                "parentDepartmentName": {"type": "string"}
            }
        },
        "domain.Appointment": {
            "type": "object",
            "properties": {
                "hn": {"type": "string"},
                "en": {"type": "string"},
                "doctorId": {"type": "string"},
                "doctorName": {"type": "string"},
                "appointmentDatetime": {"type": "string", "example": "2025-01-10 09:00:00"},
                "comment": {"type": "string"},
                "status": {"type": "string", "example": "book"},
                "location": {"type": "array", "items": {"$ref": "#/definitions/domain.Location"}}
            }
        },
        "domain.ScheduleBlock": {
            "type": "object",
            "properties": {
                "startDate": {"type": "string"},
                "endDate": {"type": "string"},
                "startTime": {"type": "string"},
                "endTime": {"type": "string"},
                "weekDay": {"type": "string"},
                "locationId": {"type": "string"},
                "locationName": {"type": "string"}
            }
        },
        "domain.DoctorProfile": {
            "type": "object",
            "properties": {
                "doctorId": {"type": "string"},
                "doctorName": {"type": "string"},
                "gender": {"type": "string"},
                "licenseNo": {"type": "string"},
                "specialty": {"type": "string"},
                "photo": {"type": "string"},
                "location": {"type": "array", "items": {"$ref": "#/definitions/domain.Location"}},
                "schedule": {"type": "array", "items": {"$ref": "#/definitions/domain.ScheduleBlock"}}
            }
        },
        "domain.Patient": {
            "type": "object",
            "properties": {
                "hn": {"type": "string"},
                "national_id": {"type": "string", "x-nullable": true},
                "passboard": {"type": "string", "x-nullable": true},
                "fullname": {"type": "string"},
                "language": {"type": "string"}
            }
        },
        "domain.StaffProfile": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "fullname_th": {"type": "string"},
                "fullname_en": {"type": "string"},
                "departmant": {"type": "string"},
                "role": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "HIS Mockup API",
	Description:      "Mock Hospital Information System API for integration testing.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
