//go:build lambda

package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"os"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/tidwall/gjson"
)

var jsonHeader = map[string]string{
	"Content-Type": "application/json",
}

var logger = NewLogger(os.Stderr, os.Getenv("VERBOSE") != "")

type optimizeResult struct {
	Score      int      `json:"score"`
	Evaluated  int      `json:"evaluated"`
	Days       int      `json:"days"`
	DaysUsed   int      `json:"daysUsed"`
	Policy     string   `json:"policy"`
	TimeMs     int64    `json:"timeMs"`
	Signups    []Signup `json:"signups"`
	Submission string   `json:"submission"`
}

// decodeRequest accepts either {"instance": "<text format>"} or a JSON
// instance, each with an optional "policy".
func decodeRequest(body string) (*Instance, Config, error) {
	cfg := DefaultConfig()
	if !gjson.Valid(body) {
		return nil, cfg, errors.New("invalid JSON body")
	}
	policy, err := ParseClaimPolicy(gjson.Get(body, "policy").String())
	if err != nil {
		return nil, cfg, err
	}
	cfg.Policy = policy

	var in *Instance
	if text := gjson.Get(body, "instance"); text.Exists() {
		if text.Type != gjson.String {
			return nil, cfg, errors.New("instance must be a string in the text format")
		}
		in, err = ParseInstance(strings.NewReader(text.String()))
	} else {
		in, err = ParseJSONInstance(body)
	}
	return in, cfg, err
}

func handler(ctx context.Context, event events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error) {
	body := event.Body
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return errResp(400, "invalid base64 body")
		}
		body = string(decoded)
	}

	in, cfg, err := decodeRequest(body)
	if err != nil {
		return errResp(400, err.Error())
	}

	res := NewOptimizer(in, cfg, logger).Optimize()
	evaluated, err := Evaluate(in, res.Signups)
	if err != nil {
		logger.ErrorContext(ctx, "submission rejected", "err", err)
		return errResp(500, err.Error())
	}
	logger.InfoContext(ctx, "solved",
		"libraries", len(res.Signups),
		"score", res.Score,
		"elapsed", res.Elapsed,
	)

	resp := optimizeResult{
		Score:      res.Score,
		Evaluated:  evaluated,
		Days:       in.Days,
		DaysUsed:   res.DaysUsed,
		Policy:     cfg.Policy.String(),
		TimeMs:     res.Elapsed.Milliseconds(),
		Signups:    res.Signups,
		Submission: FormatSubmission(res.Signups),
	}
	respJSON, _ := json.Marshal(resp)
	return events.LambdaFunctionURLResponse{StatusCode: 200, Headers: jsonHeader, Body: string(respJSON)}, nil
}

func errResp(code int, msg string) (events.LambdaFunctionURLResponse, error) {
	body, _ := json.Marshal(map[string]string{"error": msg})
	return events.LambdaFunctionURLResponse{StatusCode: code, Headers: jsonHeader, Body: string(body)}, nil
}

func main() {
	lambda.Start(handler)
}
