package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "HIS Docs API",
        "description": "Interface documentation management backend for hospital HIS integrations",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Authentication", "description": "Login, registration and profile"},
        {"name": "Projects", "description": "Integration projects and their attachments"},
        {"name": "Interfaces", "description": "Interface catalogue (views and APIs)"},
        {"name": "Parameters", "description": "Interface parameters and batch import"},
        {"name": "Dictionaries", "description": "Reference code tables"},
        {"name": "Documents", "description": "Standalone reference documents"},
        {"name": "FAQs", "description": "Frequently asked questions"},
        {"name": "Exports", "description": "Catalogue exports"}
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/auth/register": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Register user",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Username already exists"}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate user",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["Authentication"],
                "summary": "Get current user",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/projects": {
            "get": {
                "tags": ["Projects"],
                "summary": "List projects",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "keyword", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "page_size", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Projects"],
                "summary": "Create project",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateProjectRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/projects/{id}": {
            "get": {
                "tags": ["Projects"],
                "summary": "Get project detail",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            },
            "put": {
                "tags": ["Projects"],
                "summary": "Update project (owner or admin)",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}
            },
            "delete": {
                "tags": ["Projects"],
                "summary": "Delete project (owner or admin, cascades)",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"204": {"description": "Deleted"}, "403": {"description": "Forbidden"}}
            }
        },
        "/projects/{id}/attachments": {
            "post": {
                "tags": ["Projects"],
                "summary": "Upload project attachment (PDF only)",
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "file", "in": "formData", "required": true, "type": "file"},
                    {"name": "category", "in": "formData", "type": "string"}
                ],
                "responses": {
                    "201": {"description": "Full updated attachment list"},
                    "400": {"description": "Unsupported type or oversized file"},
                    "409": {"description": "Concurrent modification"}
                }
            }
        },
        "/projects/{id}/attachments/{storedFilename}": {
            "delete": {
                "tags": ["Projects"],
                "summary": "Delete project attachment",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "storedFilename", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Full updated attachment list"},
                    "404": {"description": "Attachment not found"},
                    "409": {"description": "Concurrent modification"}
                }
            }
        },
        "/interfaces": {
            "get": {
                "tags": ["Interfaces"],
                "summary": "List interfaces",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "keyword", "in": "query", "type": "string"},
                    {"name": "project_id", "in": "query", "type": "string"},
                    {"name": "interface_type", "in": "query", "type": "string"},
                    {"name": "category", "in": "query", "type": "string"},
                    {"name": "tags", "in": "query", "type": "string"},
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "page_size", "in": "query", "type": "integer"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Interfaces"],
                "summary": "Create interface",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateInterfaceRequest"}}
                ],
                "responses": {"201": {"description": "Created"}, "409": {"description": "Duplicate code"}}
            }
        },
        "/interfaces/search": {
            "post": {
                "tags": ["Interfaces"],
                "summary": "Search interfaces (cached)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SearchInterfacesRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/interfaces/{id}": {
            "get": {
                "tags": ["Interfaces"],
                "summary": "Get interface with parameters",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            },
            "put": {
                "tags": ["Interfaces"],
                "summary": "Update interface (parameters array replaces full list)",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "409": {"description": "Duplicate code"}}
            },
            "delete": {
                "tags": ["Interfaces"],
                "summary": "Delete interface",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"204": {"description": "Deleted"}}
            }
        },
        "/interfaces/{id}/parameters": {
            "get": {
                "tags": ["Parameters"],
                "summary": "List interface parameters",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "param_type", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["Parameters"],
                "summary": "Add parameter",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ParameterPayload"}}
                ],
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/interfaces/{id}/parameters/import/preview": {
            "post": {
                "tags": ["Parameters"],
                "summary": "Preview batch import of pasted delimited text",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ImportPreviewRequest"}}
                ],
                "responses": {"200": {"description": "Parsed rows, nothing persisted"}}
            }
        },
        "/interfaces/{id}/parameters/import": {
            "post": {
                "tags": ["Parameters"],
                "summary": "Commit previewed parameter batch",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ImportCommitRequest"}}
                ],
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/parameters/{id}": {
            "get": {
                "tags": ["Parameters"],
                "summary": "Get parameter detail",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            },
            "put": {
                "tags": ["Parameters"],
                "summary": "Update parameter",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}}
            },
            "delete": {
                "tags": ["Parameters"],
                "summary": "Delete parameter",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"204": {"description": "Deleted"}}
            }
        },
        "/dictionaries": {
            "get": {
                "tags": ["Dictionaries"],
                "summary": "List dictionaries",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "project_id", "in": "query", "type": "string"},
                    {"name": "keyword", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "page_size", "in": "query", "type": "integer"}
                ],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["Dictionaries"],
                "summary": "Create dictionary with optional inline values",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateDictionaryRequest"}}
                ],
                "responses": {"201": {"description": "Created"}, "409": {"description": "Duplicate code"}}
            }
        },
        "/dictionaries/{id}": {
            "get": {
                "tags": ["Dictionaries"],
                "summary": "Get dictionary with values",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            },
            "put": {
                "tags": ["Dictionaries"],
                "summary": "Update dictionary",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}}
            },
            "delete": {
                "tags": ["Dictionaries"],
                "summary": "Delete dictionary",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"204": {"description": "Deleted"}}
            }
        },
        "/dictionaries/{id}/values": {
            "get": {
                "tags": ["Dictionaries"],
                "summary": "List dictionary values",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["Dictionaries"],
                "summary": "Append dictionary value",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/DictionaryValuePayload"}}
                ],
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/dictionaries/{id}/values/{valueId}": {
            "delete": {
                "tags": ["Dictionaries"],
                "summary": "Delete dictionary value",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "valueId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {"204": {"description": "Deleted"}}
            }
        },
        "/documents": {
            "get": {
                "tags": ["Documents"],
                "summary": "List documents",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "keyword", "in": "query", "type": "string"},
                    {"name": "document_type", "in": "query", "type": "string"},
                    {"name": "region", "in": "query", "type": "string"},
                    {"name": "person", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "page_size", "in": "query", "type": "integer"}
                ],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["Documents"],
                "summary": "Create document record",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateDocumentRequest"}}
                ],
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/documents/{id}": {
            "get": {
                "tags": ["Documents"],
                "summary": "Get document detail",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            },
            "put": {
                "tags": ["Documents"],
                "summary": "Update document",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}}
            },
            "delete": {
                "tags": ["Documents"],
                "summary": "Delete document",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"204": {"description": "Deleted"}}
            }
        },
        "/documents/{id}/attachments": {
            "post": {
                "tags": ["Documents"],
                "summary": "Upload document attachment (type must match document_type)",
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "file", "in": "formData", "required": true, "type": "file"},
                    {"name": "category", "in": "formData", "type": "string"}
                ],
                "responses": {"201": {"description": "Full updated attachment list"}}
            }
        },
        "/documents/{id}/attachments/{storedFilename}": {
            "delete": {
                "tags": ["Documents"],
                "summary": "Delete document attachment (last required-type file is kept)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "storedFilename", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Full updated attachment list"},
                    "409": {"description": "Last attachment of the required type"}
                }
            }
        },
        "/faqs": {
            "get": {
                "tags": ["FAQs"],
                "summary": "List FAQ entries",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "keyword", "in": "query", "type": "string"},
                    {"name": "category", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "page_size", "in": "query", "type": "integer"}
                ],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["FAQs"],
                "summary": "Create FAQ entry",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateFAQRequest"}}
                ],
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/faqs/{id}": {
            "get": {
                "tags": ["FAQs"],
                "summary": "Get FAQ detail",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            },
            "put": {
                "tags": ["FAQs"],
                "summary": "Update FAQ entry",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}}
            },
            "delete": {
                "tags": ["FAQs"],
                "summary": "Delete FAQ entry",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"204": {"description": "Deleted"}}
            }
        },
        "/faqs/{id}/attachments": {
            "post": {
                "tags": ["FAQs"],
                "summary": "Upload FAQ attachment (PDF or image)",
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "file", "in": "formData", "required": true, "type": "file"},
                    {"name": "category", "in": "formData", "type": "string"}
                ],
                "responses": {"201": {"description": "Full updated attachment list"}}
            }
        },
        "/faqs/{id}/attachments/{storedFilename}": {
            "delete": {
                "tags": ["FAQs"],
                "summary": "Delete FAQ attachment",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "storedFilename", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {"200": {"description": "Full updated attachment list"}}
            }
        },
        "/exports/interfaces": {
            "get": {
                "tags": ["Exports"],
                "summary": "Export the interface catalogue",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "description": "json, csv or pdf"}
                ],
                "responses": {"200": {"description": "File download"}}
            }
        }
    },
    "definitions": {
        "RegisterRequest": {
            "type": "object",
            "required": ["username"],
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string", "description": "Optional; empty creates a passwordless account"},
                "display_name": {"type": "string"}
            }
        },
        "LoginRequest": {
            "type": "object",
            "required": ["username"],
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "CreateProjectRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string"},
                "manager": {"type": "string"},
                "contact_info": {"type": "string"},
                "description": {"type": "string"},
                "documents": {"type": "array", "items": {"type": "object"}}
            }
        },
        "CreateInterfaceRequest": {
            "type": "object",
            "required": ["project_id", "code", "name", "interface_type"],
            "properties": {
                "project_id": {"type": "string"},
                "code": {"type": "string"},
                "name": {"type": "string"},
                "description": {"type": "string"},
                "interface_type": {"type": "string", "enum": ["view", "api"]},
                "url": {"type": "string"},
                "method": {"type": "string"},
                "category": {"type": "string"},
                "tags": {"type": "array", "items": {"type": "string"}},
                "status": {"type": "string", "enum": ["active", "inactive"]},
                "input_example": {"type": "string"},
                "output_example": {"type": "string"},
                "view_definition": {"type": "string"},
                "notes": {"type": "string"},
                "parameters": {"type": "array", "items": {"$ref": "#/definitions/ParameterPayload"}}
            }
        },
        "SearchInterfacesRequest": {
            "type": "object",
            "properties": {
                "keyword": {"type": "string"},
                "project_id": {"type": "string"},
                "interface_type": {"type": "string"},
                "category": {"type": "string"},
                "tags": {"type": "array", "items": {"type": "string"}},
                "status": {"type": "string"},
                "page": {"type": "integer"},
                "page_size": {"type": "integer"}
            }
        },
        "ParameterPayload": {
            "type": "object",
            "properties": {
                "param_type": {"type": "string", "enum": ["input", "output"]},
                "field_name": {"type": "string"},
                "name": {"type": "string"},
                "data_type": {"type": "string"},
                "required": {"type": "boolean"},
                "default_value": {"type": "string"},
                "description": {"type": "string"},
                "example": {"type": "string"},
                "order_index": {"type": "integer"},
                "dictionary_id": {"type": "string"}
            }
        },
        "ImportPreviewRequest": {
            "type": "object",
            "required": ["text", "param_type"],
            "properties": {
                "text": {"type": "string", "description": "Pasted delimited rows (tab, comma, pipe or multi-space)"},
                "param_type": {"type": "string", "enum": ["input", "output"]}
            }
        },
        "ImportCommitRequest": {
            "type": "object",
            "required": ["parameters", "param_type"],
            "properties": {
                "parameters": {"type": "array", "items": {"$ref": "#/definitions/ParameterPayload"}},
                "param_type": {"type": "string", "enum": ["input", "output"]}
            }
        },
        "CreateDictionaryRequest": {
            "type": "object",
            "required": ["project_id", "code", "name"],
            "properties": {
                "project_id": {"type": "string"},
                "code": {"type": "string"},
                "name": {"type": "string"},
                "description": {"type": "string"},
                "interface_id": {"type": "string"},
                "values": {"type": "array", "items": {"$ref": "#/definitions/DictionaryValuePayload"}}
            }
        },
        "DictionaryValuePayload": {
            "type": "object",
            "required": ["key", "value"],
            "properties": {
                "key": {"type": "string"},
                "value": {"type": "string"},
                "description": {"type": "string"},
                "order_index": {"type": "integer"}
            }
        },
        "CreateDocumentRequest": {
            "type": "object",
            "required": ["title", "document_type"],
            "properties": {
                "title": {"type": "string"},
                "description": {"type": "string"},
                "region": {"type": "string"},
                "person": {"type": "string"},
                "document_type": {"type": "string", "enum": ["pdf", "image"]}
            }
        },
        "CreateFAQRequest": {
            "type": "object",
            "required": ["title", "content_type"],
            "properties": {
                "title": {"type": "string"},
                "description": {"type": "string"},
                "category": {"type": "string"},
                "content_type": {"type": "string", "enum": ["attachment", "rich_text"]},
                "content": {"type": "string"}
            }
        },
        "Attachment": {
            "type": "object",
            "properties": {
                "filename": {"type": "string"},
                "stored_filename": {"type": "string"},
                "file_path": {"type": "string"},
                "file_size": {"type": "integer"},
                "mime_type": {"type": "string"},
                "upload_time": {"type": "string", "format": "date-time"},
                "category": {"type": "string"}
            }
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
