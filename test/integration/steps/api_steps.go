package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/golang-jwt/jwt/v5"

	"github.com/expense-tracker/backend/internal/integration/adapters"
)

// registerAPISteps registers HTTP request steps.
func registerAPISteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the API server is running$`, theAPIServerIsRunning)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)"$`, iSendARequestTo)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, iSendARequestToWithBody)
	ctx.Step(`^I set header "([^"]*)" to "([^"]*)"$`, iSetHeaderTo)
	ctx.Step(`^I am authenticated as "([^"]*)"$`, iAmAuthenticatedAs)
	ctx.Step(`^I am authenticated as "([^"]*)" with email "([^"]*)"$`, iAmAuthenticatedAsWithEmail)
	ctx.Step(`^I am authenticated with an expired token$`, iAmAuthenticatedWithAnExpiredToken)
	ctx.Step(`^I am not authenticated$`, iAmNotAuthenticated)
}

// registerResponseSteps registers response validation steps.
func registerResponseSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the response status should be (\d+)$`, theResponseStatusShouldBe)
	ctx.Step(`^the response should be JSON$`, theResponseShouldBeJSON)
	ctx.Step(`^the response should contain "([^"]*)"$`, theResponseShouldContain)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, theResponseFieldShouldBe)
	ctx.Step(`^the response field "([^"]*)" should exist$`, theResponseFieldShouldExist)
	ctx.Step(`^the response field "([^"]*)" should have (\d+) items?$`, theResponseFieldShouldHaveItems)
	ctx.Step(`^I remember the response field "([^"]*)" as "([^"]*)"$`, iRememberTheResponseFieldAs)
}

func theAPIServerIsRunning(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil || tc.server == nil {
		return fmt.Errorf("test server is not running")
	}
	return nil
}

func (tc *TestContext) send(method, endpoint string, body io.Reader) error {
	req, err := http.NewRequest(method, tc.server.URL+tc.expand(endpoint), body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range tc.requestHeaders {
		req.Header.Set(key, value)
	}
	if tc.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+tc.accessToken)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	tc.response = resp
	tc.responseBody, err = io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	return nil
}

func iSendARequestTo(ctx context.Context, method, endpoint string) error {
	return GetTestContext(ctx).send(method, endpoint, nil)
}

func iSendARequestToWithBody(ctx context.Context, method, endpoint string, body *godog.DocString) error {
	tc := GetTestContext(ctx)
	return tc.send(method, endpoint, bytes.NewBufferString(tc.expand(body.Content)))
}

func iSetHeaderTo(ctx context.Context, header, value string) error {
	GetTestContext(ctx).requestHeaders[header] = value
	return nil
}

func signIdentityToken(subject, email string, expiresAt time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, adapters.IdentityClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(expiresAt.Add(-time.Hour)),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})
	return token.SignedString([]byte(testJWTSecret))
}

func iAmAuthenticatedAs(ctx context.Context, subject string) error {
	return iAmAuthenticatedAsWithEmail(ctx, subject, "")
}

func iAmAuthenticatedAsWithEmail(ctx context.Context, subject, email string) error {
	tc := GetTestContext(ctx)
	token, err := signIdentityToken(subject, email, time.Now().Add(time.Hour))
	if err != nil {
		return fmt.Errorf("failed to sign token: %w", err)
	}
	tc.accessToken = token
	return nil
}

func iAmAuthenticatedWithAnExpiredToken(ctx context.Context) error {
	tc := GetTestContext(ctx)
	token, err := signIdentityToken("auth0|expired", "expired@example.com", time.Now().Add(-time.Hour))
	if err != nil {
		return fmt.Errorf("failed to sign token: %w", err)
	}
	tc.accessToken = token
	return nil
}

func iAmNotAuthenticated(ctx context.Context) error {
	GetTestContext(ctx).accessToken = ""
	return nil
}

func theResponseStatusShouldBe(ctx context.Context, expectedStatus int) error {
	tc := GetTestContext(ctx)
	if tc.response == nil {
		return fmt.Errorf("no response received")
	}
	if tc.response.StatusCode != expectedStatus {
		return fmt.Errorf("expected status %d, got %d. Body: %s", expectedStatus, tc.response.StatusCode, string(tc.responseBody))
	}
	return nil
}

func theResponseShouldBeJSON(ctx context.Context) error {
	var js json.RawMessage
	if err := json.Unmarshal(GetTestContext(ctx).responseBody, &js); err != nil {
		return fmt.Errorf("response is not valid JSON: %w", err)
	}
	return nil
}

func theResponseShouldContain(ctx context.Context, expected string) error {
	tc := GetTestContext(ctx)
	if !strings.Contains(string(tc.responseBody), tc.expand(expected)) {
		return fmt.Errorf("response does not contain '%s'. Body: %s", expected, string(tc.responseBody))
	}
	return nil
}

// lookupField resolves a dotted path such as "expenses.0.amount".
func (tc *TestContext) lookupField(path string) (any, error) {
	var data any
	if err := json.Unmarshal(tc.responseBody, &data); err != nil {
		return nil, fmt.Errorf("failed to parse response JSON: %w", err)
	}

	current := data
	for _, part := range strings.Split(path, ".") {
		switch node := current.(type) {
		case map[string]any:
			value, ok := node[part]
			if !ok {
				return nil, fmt.Errorf("field '%s' not found in response: %s", path, string(tc.responseBody))
			}
			current = value
		case []any:
			var index int
			if _, err := fmt.Sscanf(part, "%d", &index); err != nil || index < 0 || index >= len(node) {
				return nil, fmt.Errorf("index '%s' out of range in '%s'", part, path)
			}
			current = node[index]
		default:
			return nil, fmt.Errorf("field '%s' not found in response: %s", path, string(tc.responseBody))
		}
	}
	return current, nil
}

func theResponseFieldShouldBe(ctx context.Context, field, expected string) error {
	tc := GetTestContext(ctx)
	value, err := tc.lookupField(field)
	if err != nil {
		return err
	}

	actual := fmt.Sprintf("%v", value)
	if actual != tc.expand(expected) {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expected, actual)
	}
	return nil
}

func theResponseFieldShouldExist(ctx context.Context, field string) error {
	_, err := GetTestContext(ctx).lookupField(field)
	return err
}

func theResponseFieldShouldHaveItems(ctx context.Context, field string, expected int) error {
	value, err := GetTestContext(ctx).lookupField(field)
	if err != nil {
		return err
	}

	var length int
	switch node := value.(type) {
	case []any:
		length = len(node)
	case map[string]any:
		length = len(node)
	default:
		return fmt.Errorf("field '%s' is not a list", field)
	}
	if length != expected {
		return fmt.Errorf("field '%s' expected %d items, got %d", field, expected, length)
	}
	return nil
}

func iRememberTheResponseFieldAs(ctx context.Context, field, name string) error {
	tc := GetTestContext(ctx)
	value, err := tc.lookupField(field)
	if err != nil {
		return err
	}
	tc.remembered[name] = fmt.Sprintf("%v", value)
	return nil
}
