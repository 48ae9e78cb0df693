package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Music School API",
        "description": "Student registry, attendance, fee ledger and dashboard statistics",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Stats", "description": "Monthly and trailing-year statistics"},
        {"name": "Dashboard", "description": "Combined dashboard payload"},
        {"name": "Students", "description": "Student registry"},
        {"name": "Attendance", "description": "Daily attendance"},
        {"name": "Finance", "description": "Payments and expenses"},
        {"name": "Observability", "description": "Process metrics"}
    ],
    "paths": {
        "/stats": {
            "get": {
                "tags": ["Stats"],
                "summary": "Monthly and trailing-year statistics",
                "parameters": [
                    {"name": "month", "in": "query", "type": "string", "description": "YYYY-MM, defaults to the current month"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/StatsEnvelope"}},
                    "400": {"description": "Invalid month", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "503": {"description": "Data source unavailable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/stats/series": {
            "get": {
                "tags": ["Stats"],
                "summary": "Monthly payments versus expenses",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/stats/export": {
            "get": {
                "tags": ["Stats"],
                "summary": "Download statistics as CSV or PDF",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "month", "in": "query", "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File", "schema": {"type": "file"}}
                }
            }
        },
        "/dashboard": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Statistics together with the monthly series",
                "parameters": [
                    {"name": "month", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students": {
            "get": {
                "tags": ["Students"],
                "summary": "List students",
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "instrument", "in": "query", "type": "string", "enum": ["guitar", "drums", "keyboard"]},
                    {"name": "active", "in": "query", "type": "boolean"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "sort", "in": "query", "type": "string"},
                    {"name": "order", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Students"],
                "summary": "Register student",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/StudentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Email already registered", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/{id}": {
            "parameters": [
                {"name": "id", "in": "path", "required": true, "type": "integer"}
            ],
            "get": {
                "tags": ["Students"],
                "summary": "Get student",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Students"],
                "summary": "Update student",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/StudentRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Students"],
                "summary": "Deactivate student",
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/students/{id}/attendance": {
            "get": {
                "tags": ["Students"],
                "summary": "Attendance history for a student",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "from", "in": "query", "type": "string", "format": "date"},
                    {"name": "to", "in": "query", "type": "string", "format": "date"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/attendance": {
            "get": {
                "tags": ["Attendance"],
                "summary": "List attendance",
                "parameters": [
                    {"name": "studentId", "in": "query", "type": "integer"},
                    {"name": "status", "in": "query", "type": "string", "enum": ["present", "absent"]},
                    {"name": "from", "in": "query", "type": "string", "format": "date"},
                    {"name": "to", "in": "query", "type": "string", "format": "date"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Attendance"],
                "summary": "Record attendance",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AttendanceRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Already recorded", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/attendance/{id}": {
            "delete": {
                "tags": ["Attendance"],
                "summary": "Delete attendance record",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/payments": {
            "get": {
                "tags": ["Finance"],
                "summary": "List payments",
                "parameters": [
                    {"name": "studentId", "in": "query", "type": "integer"},
                    {"name": "status", "in": "query", "type": "string", "enum": ["DUE", "PAID"]},
                    {"name": "from", "in": "query", "type": "string", "format": "date"},
                    {"name": "to", "in": "query", "type": "string", "format": "date"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Finance"],
                "summary": "Record payment",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/PaymentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/payments/{id}/paid": {
            "post": {
                "tags": ["Finance"],
                "summary": "Mark payment as paid",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/payments/{id}": {
            "delete": {
                "tags": ["Finance"],
                "summary": "Delete payment",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/expenses": {
            "get": {
                "tags": ["Finance"],
                "summary": "List expenses",
                "parameters": [
                    {"name": "status", "in": "query", "type": "string", "enum": ["DUE", "PAID"]},
                    {"name": "category", "in": "query", "type": "string", "enum": ["UTILITIES", "RENT", "MISC"]},
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "from", "in": "query", "type": "string", "format": "date"},
                    {"name": "to", "in": "query", "type": "string", "format": "date"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Finance"],
                "summary": "Record expense",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ExpenseRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/expenses/{id}": {
            "delete": {
                "tags": ["Finance"],
                "summary": "Delete expense",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/metrics/summary": {
            "get": {
                "tags": ["Observability"],
                "summary": "Process metrics snapshot",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "InstrumentCount": {
            "type": "object",
            "properties": {
                "instrument": {"type": "string", "enum": ["guitar", "drums", "keyboard"]},
                "count": {"type": "integer"}
            }
        },
        "WindowStats": {
            "type": "object",
            "properties": {
                "activeStudents": {"type": "integer"},
                "totalPayments": {"type": "string"},
                "totalExpenses": {"type": "string"},
                "instrumentBreakdown": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/InstrumentCount"}
                }
            }
        },
        "CombinedStats": {
            "type": "object",
            "properties": {
                "month": {"type": "string"},
                "monthly": {"$ref": "#/definitions/WindowStats"},
                "yearly": {"$ref": "#/definitions/WindowStats"},
                "hasData": {"type": "boolean"}
            }
        },
        "StatsEnvelope": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/CombinedStats"},
                "meta": {"type": "object"}
            }
        },
        "StudentRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "instrument": {"type": "string", "enum": ["guitar", "drums", "keyboard"]},
                "grade": {"type": "string", "enum": ["grade1", "grade2", "grade3"]},
                "batch": {"type": "string", "enum": ["mt", "tf", "ws"]},
                "dateOfBirth": {"type": "string", "format": "date"},
                "joiningDate": {"type": "string", "format": "date"},
                "isActive": {"type": "boolean"}
            },
            "required": ["name", "email", "phone", "joiningDate"]
        },
        "AttendanceRequest": {
            "type": "object",
            "properties": {
                "studentId": {"type": "integer"},
                "date": {"type": "string", "format": "date"},
                "status": {"type": "string", "enum": ["present", "absent"]},
                "notes": {"type": "string"}
            },
            "required": ["studentId", "date", "status"]
        },
        "PaymentRequest": {
            "type": "object",
            "properties": {
                "studentId": {"type": "integer"},
                "date": {"type": "string", "format": "date"},
                "amount": {"type": "string"},
                "description": {"type": "string"},
                "paymentMethod": {"type": "string", "enum": ["CASH", "CARD"]},
                "paymentStatus": {"type": "string", "enum": ["DUE", "PAID"]},
                "transactionId": {"type": "string"},
                "notes": {"type": "string"}
            },
            "required": ["studentId", "amount", "description", "paymentStatus"]
        },
        "ExpenseRequest": {
            "type": "object",
            "properties": {
                "date": {"type": "string", "format": "date"},
                "amount": {"type": "string"},
                "description": {"type": "string"},
                "category": {"type": "string", "enum": ["UTILITIES", "RENT", "MISC"]},
                "expenseStatus": {"type": "string", "enum": ["DUE", "PAID"]},
                "paymentMethod": {"type": "string", "enum": ["CASH", "CARD"]},
                "transactionId": {"type": "string"},
                "notes": {"type": "string"}
            },
            "required": ["amount", "description"]
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
