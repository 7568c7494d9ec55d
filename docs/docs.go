// Package docs holds the generated Swagger 2.0 document for the scoring
// API. It would normally be produced by `swag init` from the handler
// package's doc comments; checked in here so ServeOpenAPI3Spec has a
// document to serve without a build-time codegen step.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Blink Score Engine API",
        "description": "Deterministic consumer credit-risk scoring over a user's transaction ledger.",
        "version": "{{.Version}}"
    },
    "basePath": "{{.BasePath}}",
    "paths": {
        "/score/{userId}": {
            "post": {
                "tags": ["score"],
                "summary": "Score a user",
                "parameters": [
                    {"name": "userId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "422": {"description": "Insufficient History"}
                }
            },
            "get": {
                "tags": ["score"],
                "summary": "Get a user's latest audit row",
                "parameters": [
                    {"name": "userId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/score/{userId}/overrides": {
            "put": {
                "tags": ["score"],
                "summary": "Submit tagging overrides and re-score",
                "parameters": [
                    {"name": "userId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/dispatch/run": {
            "post": {
                "tags": ["dispatch"],
                "summary": "Trigger a rescoring sweep",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"},
        "ServiceTokenAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so other packages can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Blink Score Engine API",
	Description:      "Deterministic consumer credit-risk scoring over a user's transaction ledger.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
