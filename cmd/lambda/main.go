package main

import (
	"context"
	"encoding/base64"
	"net/http"

	"github.com/aws/aws-lambda-go/lambda"
	json "github.com/json-iterator/go"
	"github.com/vine-io/flowlayout"
	"github.com/vine-io/flowlayout/api"
	"github.com/vine-io/flowlayout/importer"
	"github.com/vine-io/flowlayout/report"
	"github.com/vine-io/flowlayout/schema"
)

// LambdaEvent is the invocation payload (e.g. from API Gateway).
type LambdaEvent struct {
	Body     string `json:"body"` // layout config (raw or base64 if isBase64)
	IsBase64 bool   `json:"isBase64,omitempty"`
	// Format of Body, json by default.
	Format          string `json:"format,omitempty"`
	ExecutionSuffix *bool  `json:"executionSuffix,omitempty"`
}

// LambdaResponse is returned to the client (API Gateway).
type LambdaResponse struct {
	StatusCode int                 `json:"statusCode"`
	Success    bool                `json:"success"`
	Errors     []report.Diagnostic `json:"errors,omitempty"`
	Warnings   []report.Diagnostic `json:"warnings,omitempty"`
	Issues     []schema.Issue      `json:"issues,omitempty"`
	Files      map[string]string   `json:"files,omitempty"` // filename -> content (base64)
}

// APIGatewayResponse is the shape expected by API Gateway proxy integration.
type APIGatewayResponse struct {
	StatusCode int               `json:"statusCode"`
	Headers    map[string]string `json:"headers,omitempty"`
	Body       string            `json:"body"`
}

func handler(ctx context.Context, event LambdaEvent) (APIGatewayResponse, error) {
	out := LambdaResponse{StatusCode: http.StatusOK}

	body := []byte(event.Body)
	if event.IsBase64 {
		dec, err := base64.StdEncoding.DecodeString(event.Body)
		if err != nil {
			return wrap(failed(out, "", api.BadRequest("invalid base64 body: %v", err))), nil
		}
		body = dec
	}

	format := schema.FormatJSON
	if event.Format != "" {
		f, err := schema.ParseFormat(event.Format)
		if err != nil {
			return wrap(failed(out, "format", err)), nil
		}
		format = f
	}

	if err := schema.ValidateDocument(body, format); err != nil {
		return wrap(failed(out, "document", api.BadRequest("%v", err))), nil
	}
	cfg, err := schema.Unmarshal(body, format)
	if err != nil {
		return wrap(failed(out, "document", err)), nil
	}
	out.Issues = cfg.Check()

	var opts []importer.Option
	if event.ExecutionSuffix != nil && *event.ExecutionSuffix {
		opts = append(opts, importer.WithExecutionSuffix())
	}
	data, result, err := flowlayout.BuildXML(ctx, cfg, opts...)
	if result != nil {
		out.Warnings = result.Report.Warnings()
		out.Errors = append(out.Errors, result.Report.Errors()...)
	}
	if err != nil {
		return wrap(failed(out, "build", err)), nil
	}

	out.Success = true
	name := cfg.Name
	if name == "" {
		name = "diagram"
	}
	out.Files = map[string]string{
		name + ".bpmn": base64.StdEncoding.EncodeToString(data),
	}
	return wrap(out), nil
}

func failed(out LambdaResponse, subject string, err error) LambdaResponse {
	e := api.FromErr(err)
	out.Success = false
	out.StatusCode = int(e.Code)
	if out.StatusCode == 0 {
		out.StatusCode = http.StatusInternalServerError
	}
	out.Errors = append(out.Errors, report.Diagnostic{
		Level:   report.LevelError,
		Subject: subject,
		Message: e.Detail,
	})
	return out
}

func wrap(out LambdaResponse) APIGatewayResponse {
	bodyBytes, _ := json.Marshal(out)
	return APIGatewayResponse{
		StatusCode: out.StatusCode,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(bodyBytes),
	}
}

func main() {
	lambda.Start(handler)
}
