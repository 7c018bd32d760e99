// Package docs holds the OpenAPI document served by swaggerkit
// Keep it in step with the @Router annotations on the handlers
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
    "openapi": "3.0.3",
    "info": {
        "title": "{{.Title}}",
        "description": "{{escape .Description}}",
        "version": "{{.Version}}"
    },
    "paths": {
        "/normalize/{platform}": {
            "post": {
                "tags": [
                    "Normalize"
                ],
                "summary": "Normalize one raw record into the canonical document",
                "operationId": "normalizeOne",
                "parameters": [
                    {
                        "name": "platform",
                        "in": "path",
                        "required": true,
                        "schema": {
                            "type": "string",
                            "enum": [
                                "bluesky",
                                "reddit"
                            ]
                        },
                        "description": "bluesky or reddit"
                    }
                ],
                "requestBody": {
                    "required": true,
                    "content": {
                        "application/json": {
                            "schema": {
                                "type": "object"
                            }
                        }
                    },
                    "description": "raw platform record"
                },
                "responses": {
                    "200": {
                        "description": "canonical document, 2-space indented",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Document"
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "Invalid JSON, Unsupported type or Unknown type",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/ErrorResponse"
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "unknown platform",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/ErrorResponse"
                                }
                            }
                        }
                    }
                }
            }
        },
        "/normalize/{platform}/batch": {
            "post": {
                "tags": [
                    "Normalize"
                ],
                "summary": "Normalize up to 500 records, each independently",
                "operationId": "normalizeBatch",
                "parameters": [
                    {
                        "name": "platform",
                        "in": "path",
                        "required": true,
                        "schema": {
                            "type": "string",
                            "enum": [
                                "bluesky",
                                "reddit"
                            ]
                        },
                        "description": "bluesky or reddit"
                    }
                ],
                "requestBody": {
                    "required": true,
                    "content": {
                        "application/json": {
                            "schema": {
                                "$ref": "#/components/schemas/BatchRequest"
                            }
                        }
                    }
                },
                "responses": {
                    "200": {
                        "description": "per record outcomes",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/Envelope"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "$ref": "#/components/schemas/BatchResponse"
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "unknown platform",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/ErrorResponse"
                                }
                            }
                        }
                    }
                }
            }
        },
        "/normalize/stats": {
            "get": {
                "tags": [
                    "Normalize"
                ],
                "summary": "In-process tally of successful and failed normalizations",
                "operationId": "normalizeStats",
                "parameters": [
                    {
                        "name": "platform",
                        "in": "query",
                        "required": false,
                        "schema": {
                            "type": "string",
                            "enum": [
                                "bluesky",
                                "reddit"
                            ]
                        },
                        "description": "bluesky or reddit"
                    },
                    {
                        "name": "limit",
                        "in": "query",
                        "required": false,
                        "schema": {
                            "type": "integer"
                        },
                        "description": "max rows"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "ok",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/Envelope"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "$ref": "#/components/schemas/Snapshot"
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    },
                    "503": {
                        "description": "tally disabled",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/ErrorResponse"
                                }
                            }
                        }
                    }
                }
            }
        },
        "/queue/{platform}": {
            "post": {
                "tags": [
                    "Queue"
                ],
                "summary": "Queue one raw record for the worker",
                "operationId": "queueEnqueue",
                "parameters": [
                    {
                        "name": "platform",
                        "in": "path",
                        "required": true,
                        "schema": {
                            "type": "string",
                            "enum": [
                                "bluesky",
                                "reddit"
                            ]
                        },
                        "description": "bluesky or reddit"
                    }
                ],
                "requestBody": {
                    "required": true,
                    "content": {
                        "application/json": {
                            "schema": {
                                "type": "object"
                            }
                        }
                    },
                    "description": "raw platform record"
                },
                "responses": {
                    "202": {
                        "description": "queued",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/Envelope"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "$ref": "#/components/schemas/EnqueueResult"
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "unknown platform",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/ErrorResponse"
                                }
                            }
                        }
                    }
                }
            }
        },
        "/queue/stats": {
            "get": {
                "tags": [
                    "Queue"
                ],
                "summary": "Current queue list lengths",
                "operationId": "queueStats",
                "responses": {
                    "200": {
                        "description": "ok",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/Envelope"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "$ref": "#/components/schemas/QueueStats"
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    }
                }
            }
        },
        "/diagnostics/top": {
            "get": {
                "tags": [
                    "Diagnostics"
                ],
                "summary": "Busiest subreddits or queries from stored diagnostics",
                "operationId": "diagnosticsTop",
                "parameters": [
                    {
                        "name": "platform",
                        "in": "query",
                        "required": false,
                        "schema": {
                            "type": "string",
                            "enum": [
                                "bluesky",
                                "reddit"
                            ]
                        },
                        "description": "bluesky or reddit"
                    },
                    {
                        "name": "by",
                        "in": "query",
                        "required": false,
                        "schema": {
                            "type": "string",
                            "enum": [
                                "subreddit",
                                "query"
                            ]
                        },
                        "description": "subreddit or query"
                    },
                    {
                        "name": "hours",
                        "in": "query",
                        "required": false,
                        "schema": {
                            "type": "integer"
                        },
                        "description": "look back window in hours"
                    },
                    {
                        "name": "limit",
                        "in": "query",
                        "required": false,
                        "schema": {
                            "type": "integer"
                        },
                        "description": "max rows"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "ok",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/Envelope"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "type": "array",
                                                    "items": {
                                                        "$ref": "#/components/schemas/TopRow"
                                                    }
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    },
                    "503": {
                        "description": "storage not configured",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/ErrorResponse"
                                }
                            }
                        }
                    }
                }
            }
        },
        "/meta/health": {
            "get": {
                "tags": [
                    "Meta"
                ],
                "summary": "Health check",
                "operationId": "metaHealth",
                "responses": {
                    "200": {
                        "description": "ok",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/Envelope"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "$ref": "#/components/schemas/HealthResponse"
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    }
                }
            }
        },
        "/meta/ready": {
            "get": {
                "tags": [
                    "Meta"
                ],
                "summary": "Readiness probe with dependency checks",
                "operationId": "metaReady",
                "responses": {
                    "200": {
                        "description": "ok",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/Envelope"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "$ref": "#/components/schemas/ReadyResponse"
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    }
                }
            }
        },
        "/meta/version": {
            "get": {
                "tags": [
                    "Meta"
                ],
                "summary": "Build and version info",
                "operationId": "metaVersion",
                "responses": {
                    "200": {
                        "description": "ok",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/Envelope"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "$ref": "#/components/schemas/BuildInfo"
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    }
                }
            }
        },
        "/meta/service": {
            "get": {
                "tags": [
                    "Meta"
                ],
                "summary": "Service info and uptime",
                "operationId": "metaService",
                "responses": {
                    "200": {
                        "description": "ok",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/Envelope"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "$ref": "#/components/schemas/ServiceResponse"
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    }
                }
            }
        },
        "/meta/platforms": {
            "get": {
                "tags": [
                    "Meta"
                ],
                "summary": "Platforms accepted by the normalize routes",
                "operationId": "metaPlatforms",
                "responses": {
                    "200": {
                        "description": "ok",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/Envelope"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "type": "array",
                                                    "items": {
                                                        "type": "string"
                                                    }
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    }
                }
            }
        }
    },
    "components": {
        "schemas": {
            "Envelope": {
                "type": "object",
                "properties": {
                    "status_code": {
                        "type": "integer",
                        "example": 200
                    },
                    "status": {
                        "type": "string",
                        "example": "OK"
                    },
                    "request_id": {
                        "type": "string",
                        "example": "579f33bf50b1/abc-000001"
                    }
                }
            },
            "Document": {
                "type": "object",
                "required": [
                    "type",
                    "id"
                ],
                "properties": {
                    "type": {
                        "type": "string",
                        "enum": [
                            "post",
                            "comment"
                        ]
                    },
                    "id": {
                        "type": "string",
                        "example": "reddit_post_1abc"
                    },
                    "title": {
                        "type": "string"
                    },
                    "platform": {
                        "type": "string",
                        "enum": [
                            "bluesky",
                            "reddit"
                        ]
                    },
                    "post_id": {
                        "type": "string",
                        "example": "reddit_post_1abc"
                    },
                    "content": {
                        "type": "string"
                    },
                    "created_utc": {
                        "description": "string or number, passed through verbatim",
                        "example": 1714521600
                    },
                    "author": {
                        "type": "string",
                        "example": "Unknown"
                    },
                    "num_comments": {
                        "type": "integer"
                    },
                    "like": {
                        "type": "integer"
                    }
                }
            },
            "BatchRequest": {
                "type": "object",
                "required": [
                    "records"
                ],
                "properties": {
                    "records": {
                        "type": "array",
                        "minItems": 1,
                        "maxItems": 500,
                        "items": {
                            "type": "object"
                        }
                    }
                }
            },
            "BatchItem": {
                "type": "object",
                "properties": {
                    "index": {
                        "type": "integer",
                        "example": 0
                    },
                    "status": {
                        "type": "integer",
                        "example": 200
                    },
                    "document": {
                        "$ref": "#/components/schemas/Document"
                    },
                    "error": {
                        "$ref": "#/components/schemas/ErrorResponse"
                    }
                }
            },
            "BatchResponse": {
                "type": "object",
                "properties": {
                    "results": {
                        "type": "array",
                        "items": {
                            "$ref": "#/components/schemas/BatchItem"
                        }
                    },
                    "ok": {
                        "type": "integer",
                        "example": 2
                    },
                    "failed": {
                        "type": "integer",
                        "example": 0
                    }
                }
            },
            "TallyRow": {
                "type": "object",
                "properties": {
                    "platform": {
                        "type": "string",
                        "example": "reddit"
                    },
                    "type": {
                        "type": "string",
                        "example": "post"
                    },
                    "subreddit": {
                        "type": "string",
                        "example": "melbourne"
                    },
                    "query": {
                        "type": "string",
                        "example": "housing"
                    },
                    "count": {
                        "type": "integer",
                        "example": 12
                    }
                }
            },
            "Snapshot": {
                "type": "object",
                "properties": {
                    "total": {
                        "type": "integer",
                        "example": 40
                    },
                    "by_platform": {
                        "type": "object",
                        "additionalProperties": {
                            "type": "integer"
                        }
                    },
                    "by_type": {
                        "type": "object",
                        "additionalProperties": {
                            "type": "integer"
                        }
                    },
                    "failed": {
                        "type": "object",
                        "additionalProperties": {
                            "type": "integer"
                        }
                    },
                    "rows": {
                        "type": "array",
                        "items": {
                            "$ref": "#/components/schemas/TallyRow"
                        }
                    },
                    "since": {
                        "type": "string",
                        "format": "date-time"
                    }
                }
            },
            "TopRow": {
                "type": "object",
                "properties": {
                    "platform": {
                        "type": "string",
                        "example": "reddit"
                    },
                    "key": {
                        "type": "string",
                        "example": "melbourne"
                    },
                    "count": {
                        "type": "integer",
                        "example": 128
                    }
                }
            },
            "EnqueueResult": {
                "type": "object",
                "properties": {
                    "queue": {
                        "type": "string",
                        "example": "socialnorm:in:reddit"
                    },
                    "depth": {
                        "type": "integer",
                        "example": 12
                    }
                }
            },
            "QueueStats": {
                "type": "object",
                "properties": {
                    "in": {
                        "type": "object",
                        "additionalProperties": {
                            "type": "integer"
                        }
                    },
                    "out": {
                        "type": "object",
                        "additionalProperties": {
                            "type": "integer"
                        }
                    },
                    "dead": {
                        "type": "integer",
                        "example": 0
                    }
                }
            },
            "HealthResponse": {
                "type": "object",
                "properties": {
                    "ok": {
                        "type": "boolean"
                    },
                    "service": {
                        "type": "string",
                        "example": "socialnorm-api"
                    },
                    "started": {
                        "type": "string",
                        "format": "date-time"
                    },
                    "now": {
                        "type": "string",
                        "format": "date-time"
                    }
                }
            },
            "ReadyCheck": {
                "type": "object",
                "properties": {
                    "name": {
                        "type": "string",
                        "example": "clickhouse"
                    },
                    "status": {
                        "type": "string",
                        "enum": [
                            "ok",
                            "fail",
                            "skipped"
                        ]
                    },
                    "error": {
                        "type": "string"
                    }
                }
            },
            "ReadyResponse": {
                "type": "object",
                "properties": {
                    "status": {
                        "type": "string",
                        "enum": [
                            "ok",
                            "fail"
                        ]
                    },
                    "checks": {
                        "type": "array",
                        "items": {
                            "$ref": "#/components/schemas/ReadyCheck"
                        }
                    },
                    "now": {
                        "type": "string",
                        "format": "date-time"
                    }
                }
            },
            "ServiceResponse": {
                "type": "object",
                "properties": {
                    "name": {
                        "type": "string",
                        "example": "socialnorm-api"
                    },
                    "started": {
                        "type": "string",
                        "format": "date-time"
                    },
                    "uptime": {
                        "type": "integer",
                        "example": 300
                    }
                }
            },
            "BuildInfo": {
                "type": "object",
                "properties": {
                    "service": {
                        "type": "string"
                    },
                    "version": {
                        "type": "string",
                        "example": "v0.3.0"
                    },
                    "commit": {
                        "type": "string"
                    },
                    "date": {
                        "type": "string"
                    }
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Title:            "socialnorm API",
	Description:      "Normalizes Bluesky and Reddit records into one canonical post and comment document",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
