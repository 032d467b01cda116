package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Classroom Dashboard API",
        "description": "Aggregated submission progress over Google Classroom courses",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {
            "name": "Classroom",
            "description": "Filtered aggregates across courses"
        },
        {
            "name": "Courses",
            "description": "Per-course listings"
        },
        {
            "name": "Session",
            "description": "Upstream classroom session"
        },
        {
            "name": "Cache",
            "description": "Cache invalidation and warm-up"
        }
    ],
    "paths": {
        "/api/classroom/courses": {
            "get": {
                "tags": [
                    "Classroom"
                ],
                "summary": "List courses",
                "parameters": [
                    {
                        "name": "pageSize",
                        "in": "query",
                        "type": "integer",
                        "description": "Provider page size (1-1000)"
                    },
                    {
                        "name": "limit",
                        "in": "query",
                        "type": "integer",
                        "description": "Maximum number of courses read"
                    },
                    {
                        "name": "cohort",
                        "in": "query",
                        "type": "string",
                        "description": "Cohort label, case-insensitive"
                    },
                    {
                        "name": "teacherId",
                        "in": "query",
                        "type": "string",
                        "description": "Teacher user or profile ID"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/response.Envelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/response.Envelope"
                        }
                    },
                    "401": {
                        "description": "No classroom session",
                        "schema": {
                            "$ref": "#/definitions/response.Envelope"
                        }
                    },
                    "502": {
                        "description": "Classroom provider failure",
                        "schema": {
                            "$ref": "#/definitions/response.Envelope"
                        }
                    }
                }
            }
        },
        "/api/classroom/teachers": {
            "get": {
                "tags": [
                    "Classroom"
                ],
                "summary": "Teachers across the filtered courses",
                "parameters": [
                    {
                        "name": "cohort",
                        "in": "query",
                        "type": "string",
                        "description": "Cohort label, case-insensitive"
                    },
                    {
                        "name": "teacherId",
                        "in": "query",
                        "type": "string",
                        "description": "Teacher user or profile ID"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/response.Envelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/response.Envelope"
                        }
                    },
                    "401": {
                        "description": "No classroom session",
                        "schema": {
                            "$ref": "#/definitions/response.Envelope"
                        }
                    },
                    "502": {
                        "description": "Classroom provider failure",
                        "schema": {
                            "$ref": "#/definitions/response.Envelope"
                        }
                    }
                }
            }
        },
        "/api/classroom/students": {
            "get": {
                "tags": [
                    "Classroom"
                ],
                "summary": "Students across the filtered courses",
                "parameters": [
                    {
                        "name": "cohort",
                        "in": "query",
                        "type": "string",
                        "description": "Cohort label, case-insensitive"
                    },
                    {
                        "name": "teacherId",
                        "in": "query",
                        "type": "string",
                        "description": "Teacher user or profile ID"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/response.Envelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/response.Envelope"
                        }
                    },
                    "401": {
                        "description": "No classroom session",
                        "schema": {
                            "$ref": "#/definitions/response.Envelope"
                        }
                    },
                    "502": {
                        "description": "Classroom provider failure",
                        "schema": {
                            "$ref": "#/definitions/response.Envelope"
                        }
                    }
                }
            }
        },
        "/api/classroom/students/progress": {
            "get": {
                "tags": [
                    "Classroom"
                ],
                "summary": "Per-student submission status rollup",
                "parameters": [
                    {
                        "name": "cohort",
                        "in": "query",
                        "type": "string",
                        "description": "Cohort label, case-insensitive"
                    },
                    {
                        "name": "teacherId",
                        "in": "query",
                        "type": "string",
                        "description": "Teacher user or profile ID"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/response.Envelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/response.Envelope"
                        }
                    },
                    "401": {
                        "description": "No classroom session",
                        "schema": {
                            "$ref": "#/definitions/response.Envelope"
                        }
                    },
                    "502": {
                        "description": "Classroom provider failure",
                        "schema": {
                            "$ref": "#/definitions/response.Envelope"
                        }
                    }
                }
            }
        },
        "/api/classroom/summary": {
            "get": {
                "tags": [
                    "Classroom"
                ],
                "summary": "Dashboard headline counts",
                "parameters": [
                    {
                        "name": "cohort",
                        "in": "query",
                        "type": "string",
                        "description": "Cohort label, case-insensitive"
                    },
                    {
                        "name": "teacherId",
                        "in": "query",
                        "type": "string",
                        "description": "Teacher user or profile ID"
                    },
                    {
                        "name": "status",
                        "in": "query",
                        "type": "string",
                        "description": "submitted, submitted-late, missing, pending or resubmission"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/response.Envelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/response.Envelope"
                        }
                    },
                    "401": {
                        "description": "No classroom session",
                        "schema": {
                            "$ref": "#/definitions/response.Envelope"
                        }
                    },
                    "502": {
                        "description": "Classroom provider failure",
                        "schema": {
                            "$ref": "#/definitions/response.Envelope"
                        }
                    }
                }
            }
        },
        "/api/classroom/cohorts/stats": {
            "get": {
                "tags": [
                    "Classroom"
                ],
                "summary": "Per-cohort submission rollup",
                "parameters": [
                    {
                        "name": "cohort",
                        "in": "query",
                        "type": "string",
                        "description": "Cohort label, case-insensitive"
                    },
                    {
                        "name": "teacherId",
                        "in": "query",
                        "type": "string",
                        "description": "Teacher user or profile ID"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/response.Envelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/response.Envelope"
                        }
                    },
                    "401": {
                        "description": "No classroom session",
                        "schema": {
                            "$ref": "#/definitions/response.Envelope"
                        }
                    },
                    "502": {
                        "description": "Classroom provider failure",
                        "schema": {
                            "$ref": "#/definitions/response.Envelope"
                        }
                    }
                }
            }
        },
        "/api/classroom/courses/{courseId}/students": {
            "get": {
                "tags": [
                    "Courses"
                ],
                "summary": "Student roster of a course",
                "parameters": [
                    {
                        "name": "courseId",
                        "in": "path",
                        "type": "string",
                        "required": true
                    },
                    {
                        "name": "pageSize",
                        "in": "query",
                        "type": "integer",
                        "description": "Provider page size (1-1000)"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/response.Envelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/response.Envelope"
                        }
                    },
                    "401": {
                        "description": "No classroom session",
                        "schema": {
                            "$ref": "#/definitions/response.Envelope"
                        }
                    },
                    "502": {
                        "description": "Classroom provider failure",
                        "schema": {
                            "$ref": "#/definitions/response.Envelope"
                        }
                    }
                }
            }
        },
        "/api/classroom/courses/{courseId}/teachers": {
            "get": {
                "tags": [
                    "Courses"
                ],
                "summary": "Teacher roster of a course",
                "parameters": [
                    {
                        "name": "courseId",
                        "in": "path",
                        "type": "string",
                        "required": true
                    },
                    {
                        "name": "pageSize",
                        "in": "query",
                        "type": "integer",
                        "description": "Provider page size (1-1000)"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/response.Envelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/response.Envelope"
                        }
                    },
                    "401": {
                        "description": "No classroom session",
                        "schema": {
                            "$ref": "#/definitions/response.Envelope"
                        }
                    },
                    "502": {
                        "description": "Classroom provider failure",
                        "schema": {
                            "$ref": "#/definitions/response.Envelope"
                        }
                    }
                }
            }
        },
        "/api/classroom/courses/{courseId}/courseWork": {
            "get": {
                "tags": [
                    "Courses"
                ],
                "summary": "Coursework of a course",
                "parameters": [
                    {
                        "name": "courseId",
                        "in": "path",
                        "type": "string",
                        "required": true
                    },
                    {
                        "name": "pageSize",
                        "in": "query",
                        "type": "integer",
                        "description": "Provider page size (1-1000)"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/response.Envelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/response.Envelope"
                        }
                    },
                    "401": {
                        "description": "No classroom session",
                        "schema": {
                            "$ref": "#/definitions/response.Envelope"
                        }
                    },
                    "502": {
                        "description": "Classroom provider failure",
                        "schema": {
                            "$ref": "#/definitions/response.Envelope"
                        }
                    }
                }
            }
        },
        "/api/classroom/courses/{courseId}/courseWork/stats": {
            "get": {
                "tags": [
                    "Courses"
                ],
                "summary": "Submission status tallies per coursework",
                "parameters": [
                    {
                        "name": "courseId",
                        "in": "path",
                        "type": "string",
                        "required": true
                    },
                    {
                        "name": "pageSize",
                        "in": "query",
                        "type": "integer",
                        "description": "Provider page size (1-1000)"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/response.Envelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/response.Envelope"
                        }
                    },
                    "401": {
                        "description": "No classroom session",
                        "schema": {
                            "$ref": "#/definitions/response.Envelope"
                        }
                    },
                    "502": {
                        "description": "Classroom provider failure",
                        "schema": {
                            "$ref": "#/definitions/response.Envelope"
                        }
                    }
                }
            }
        },
        "/api/classroom/courses/{courseId}/courseWork/{courseWorkId}/submissions": {
            "get": {
                "tags": [
                    "Courses"
                ],
                "summary": "Submissions of a coursework",
                "parameters": [
                    {
                        "name": "courseId",
                        "in": "path",
                        "type": "string",
                        "required": true
                    },
                    {
                        "name": "courseWorkId",
                        "in": "path",
                        "type": "string",
                        "required": true
                    },
                    {
                        "name": "pageSize",
                        "in": "query",
                        "type": "integer",
                        "description": "Provider page size (1-1000)"
                    },
                    {
                        "name": "status",
                        "in": "query",
                        "type": "string",
                        "description": "submitted, submitted-late, missing, pending or resubmission"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/response.Envelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/response.Envelope"
                        }
                    },
                    "401": {
                        "description": "No classroom session",
                        "schema": {
                            "$ref": "#/definitions/response.Envelope"
                        }
                    },
                    "502": {
                        "description": "Classroom provider failure",
                        "schema": {
                            "$ref": "#/definitions/response.Envelope"
                        }
                    }
                }
            }
        },
        "/api/classroom/cache/refresh": {
            "post": {
                "tags": [
                    "Cache"
                ],
                "summary": "Invalidate cached classroom data and queue a warm-up",
                "parameters": [
                    {
                        "name": "namespace",
                        "in": "query",
                        "type": "string",
                        "description": "courses, teachers, students, courseWork, courseWorkItem or submissions; all when empty"
                    }
                ],
                "responses": {
                    "202": {
                        "description": "Accepted",
                        "schema": {
                            "$ref": "#/definitions/response.Envelope"
                        }
                    },
                    "400": {
                        "description": "Unknown namespace",
                        "schema": {
                            "$ref": "#/definitions/response.Envelope"
                        }
                    }
                }
            }
        },
        "/auth/session": {
            "get": {
                "tags": [
                    "Session"
                ],
                "summary": "Upstream classroom session status",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/response.Envelope"
                        }
                    }
                }
            }
        },
        "/auth/logout": {
            "post": {
                "tags": [
                    "Session"
                ],
                "summary": "Drop the classroom session and all cached data",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                }
            }
        },
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {
                        "description": "Ready"
                    },
                    "503": {
                        "description": "Dependency unavailable"
                    }
                }
            }
        },
        "/metrics": {
            "get": {
                "summary": "Prometheus metrics",
                "produces": [
                    "text/plain"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/metrics/summary": {
            "get": {
                "summary": "Cache and upstream counters",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/response.Envelope"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "models.Pagination": {
            "type": "object",
            "properties": {
                "page_size": {
                    "type": "integer"
                },
                "limit": {
                    "type": "integer"
                },
                "total_count": {
                    "type": "integer"
                }
            }
        },
        "errors.Error": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                },
                "status": {
                    "type": "integer"
                },
                "details": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/errors.FieldError"
                    }
                }
            }
        },
        "errors.FieldError": {
            "type": "object",
            "properties": {
                "field": {
                    "type": "string"
                },
                "rule": {
                    "type": "string"
                },
                "param": {
                    "type": "string"
                }
            }
        },
        "models.ResponseMeta": {
            "type": "object",
            "properties": {
                "cache_hit": {
                    "type": "boolean"
                },
                "processing_time_ms": {
                    "type": "integer"
                }
            }
        },
        "response.Envelope": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "object"
                },
                "error": {
                    "$ref": "#/definitions/errors.Error"
                },
                "pagination": {
                    "$ref": "#/definitions/models.Pagination"
                },
                "meta": {
                    "$ref": "#/definitions/models.ResponseMeta"
                }
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
