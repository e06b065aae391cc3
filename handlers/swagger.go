package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers the API documentation endpoints.
// - GET /swagger/index.html  -> Swagger UI loading the document below
// - GET /swagger/doc.json    -> OpenAPI 3 document; paths are relative to prefix
func RegisterSwagger(r *gin.Engine, prefix string) {
	doc := []byte(strings.Replace(swaggerJSON, "{{prefix}}", prefix, 1))

	r.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	r.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", doc)
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>famsalud API - Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "famsalud API", "version": "v1.0.0" },
  "servers": [{ "url": "{{prefix}}" }],
  "components": {
    "securitySchemes": { "bearer": { "type": "http", "scheme": "bearer", "bearerFormat": "JWT" } },
    "schemas": {
      "Error": { "type": "object", "properties": {
        "statusCode": {"type":"integer"}, "message": {"type":"string"},
        "errors": {"type":"array","items":{"type":"object","properties":{"field":{"type":"string"},"message":{"type":"string"}}}},
        "timestamp": {"type":"string","format":"date-time"}, "path": {"type":"string"} } },
      "Register": { "type": "object", "required": ["email","password","fullName"], "properties": {
        "email": {"type":"string","format":"email"}, "password": {"type":"string","minLength":8}, "fullName": {"type":"string"} } },
      "Login": { "type": "object", "required": ["email","password"], "properties": {
        "email": {"type":"string","format":"email"}, "password": {"type":"string"} } },
      "FamilyMember": { "type": "object", "required": ["fullName","relationship"], "properties": {
        "fullName": {"type":"string","minLength":2}, "relationship": {"type":"string","minLength":2},
        "birthDate": {"type":"string","format":"date"}, "documentType": {"type":"string","enum":["CC","TI","CE","PA","RC","PEP","PPT"]},
        "documentNumber": {"type":"string"}, "phone": {"type":"string"}, "email": {"type":"string","format":"email"},
        "epsProviderId": {"type":"string","format":"uuid"}, "address": {"type":"string"}, "cellphone": {"type":"string"},
        "department": {"type":"string"}, "city": {"type":"string"}, "regime": {"type":"string"} } }
    }
  },
  "paths": {
    "/auth/register": {
      "post": { "summary": "Create an account", "requestBody": { "content": { "application/json": { "schema": {"$ref":"#/components/schemas/Register"} } } },
        "responses": { "201": { "description": "user summary" }, "400": { "description": "validation failed" }, "409": { "description": "email already registered" } } }
    },
    "/auth/login": {
      "post": { "summary": "Log in; sets the refreshToken cookie", "requestBody": { "content": { "application/json": { "schema": {"$ref":"#/components/schemas/Login"} } } },
        "responses": { "200": { "description": "access token" }, "401": { "description": "invalid credentials" } } }
    },
    "/auth/refresh": {
      "post": { "summary": "Exchange the refreshToken cookie for a new access token",
        "responses": { "200": { "description": "new access token" }, "401": { "description": "invalid or revoked refresh token" } } }
    },
    "/auth/logout": {
      "post": { "summary": "Revoke the refresh session and clear the cookie", "security": [{"bearer": []}],
        "responses": { "200": { "description": "logged out" }, "401": { "description": "unauthorized" } } }
    },
    "/eps-providers": { "get": { "summary": "List active EPS providers", "responses": { "200": { "description": "providers" } } } },
    "/eps-providers/{id}": {
      "get": { "summary": "Get an EPS provider", "parameters": [{"name":"id","in":"path","required":true,"schema":{"type":"string","format":"uuid"}}],
        "responses": { "200": { "description": "provider" }, "404": { "description": "not found" } } }
    },
    "/family-members": {
      "get": { "summary": "List the caller's family members", "security": [{"bearer": []}], "responses": { "200": { "description": "members" } } },
      "post": { "summary": "Add a family member", "security": [{"bearer": []}], "requestBody": { "content": { "application/json": { "schema": {"$ref":"#/components/schemas/FamilyMember"} } } },
        "responses": { "201": { "description": "created" }, "400": { "description": "validation failed" } } }
    },
    "/family-members/{id}": {
      "parameters": [{"name":"id","in":"path","required":true,"schema":{"type":"string","format":"uuid"}}],
      "get": { "summary": "Get a family member", "security": [{"bearer": []}], "responses": { "200": { "description": "member" }, "404": { "description": "not found" } } },
      "put": { "summary": "Update a family member", "security": [{"bearer": []}], "requestBody": { "content": { "application/json": { "schema": {"$ref":"#/components/schemas/FamilyMember"} } } },
        "responses": { "200": { "description": "updated" }, "404": { "description": "not found" } } },
      "delete": { "summary": "Delete a family member", "security": [{"bearer": []}], "responses": { "200": { "description": "deleted" }, "404": { "description": "not found" } } }
    },
    "/health": { "get": { "summary": "Database and Redis status", "responses": { "200": { "description": "ok" }, "503": { "description": "degraded" } } } }
  }
}`
