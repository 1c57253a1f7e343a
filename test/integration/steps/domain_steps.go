package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/integration/persistence/model"
)

// registerDomainSteps registers expense tracker specific steps.
func registerDomainSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the current time is "([^"]*)"$`, theCurrentTimeIs)
	ctx.Step(`^I have the following expenses:$`, iHaveTheFollowingExpenses)

	ctx.Step(`^the email worker runs$`, theEmailWorkerRuns)
	ctx.Step(`^the email provider responds with status (\d+)$`, theEmailProviderRespondsWithStatus)
	ctx.Step(`^(\d+) emails? should have been sent$`, emailsShouldHaveBeenSent)
	ctx.Step(`^the last email should be sent to "([^"]*)" with subject containing "([^"]*)"$`, theLastEmailShouldBeSentTo)
	ctx.Step(`^the email queue should contain (\d+) "([^"]*)" jobs?$`, theEmailQueueShouldContainJobs)

	ctx.Step(`^the AI provider suggests "([^"]*)" with confidence ([0-9.]+)$`, theAIProviderSuggests)
	ctx.Step(`^the AI provider fails with "([^"]*)"$`, theAIProviderFailsWith)

	ctx.Step(`^the stats cache is unavailable$`, theStatsCacheIsUnavailable)
	ctx.Step(`^the stats cache should hold the monthly aggregate for "([^"]*)"$`, theStatsCacheShouldHoldMonth)
}

func theCurrentTimeIs(ctx context.Context, value string) error {
	current, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return fmt.Errorf("invalid time %q: %w", value, err)
	}
	GetTestContext(ctx).clock.SetCurrentTime(current)
	return nil
}

func iHaveTheFollowingExpenses(ctx context.Context, table *godog.Table) error {
	tc := GetTestContext(ctx)
	if len(table.Rows) < 2 {
		return errors.New("expense table needs a header and at least one row")
	}

	header := make([]string, len(table.Rows[0].Cells))
	for i, cell := range table.Rows[0].Cells {
		header[i] = cell.Value
	}

	for _, row := range table.Rows[1:] {
		body := make(map[string]string, len(header))
		for i, cell := range row.Cells {
			body[header[i]] = cell.Value
		}
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}

		if err := tc.send(http.MethodPost, "/api/v1/expenses", bytes.NewReader(payload)); err != nil {
			return err
		}
		if tc.response.StatusCode != http.StatusCreated {
			return fmt.Errorf("failed to create expense %v: status %d, body %s", body, tc.response.StatusCode, string(tc.responseBody))
		}
	}
	return nil
}

func theEmailWorkerRuns(ctx context.Context) error {
	GetTestContext(ctx).injector.EmailWorker.ProcessNow(ctx)
	return nil
}

func theEmailProviderRespondsWithStatus(ctx context.Context, status int) error {
	GetTestContext(ctx).emailAPI.SetResponse(http.MethodPost, "/emails", status, map[string]any{
		"statusCode": status,
		"name":       "validation_error",
		"message":    "Invalid to field",
	})
	return nil
}

func emailsShouldHaveBeenSent(ctx context.Context, expected int) error {
	requests := GetTestContext(ctx).emailAPI.GetRequests(http.MethodPost, "/emails")
	if len(requests) != expected {
		return fmt.Errorf("expected %d emails to be sent, got %d", expected, len(requests))
	}
	return nil
}

func theLastEmailShouldBeSentTo(ctx context.Context, recipient, subject string) error {
	requests := GetTestContext(ctx).emailAPI.GetRequests(http.MethodPost, "/emails")
	if len(requests) == 0 {
		return errors.New("no email was sent")
	}
	last := requests[len(requests)-1].Body

	to := fmt.Sprintf("%v", last["to"])
	if !strings.Contains(to, recipient) {
		return fmt.Errorf("expected email to %s, got %s", recipient, to)
	}
	actualSubject := fmt.Sprintf("%v", last["subject"])
	if !strings.Contains(actualSubject, subject) {
		return fmt.Errorf("expected subject containing %q, got %q", subject, actualSubject)
	}
	return nil
}

func theEmailQueueShouldContainJobs(ctx context.Context, expected int, status string) error {
	count, err := GetTestContext(ctx).db.Count(&model.EmailQueueModel{}, "status = ?", status)
	if err != nil {
		return err
	}
	if count != int64(expected) {
		return fmt.Errorf("expected %d %s jobs, got %d", expected, status, count)
	}
	return nil
}

func theAIProviderSuggests(ctx context.Context, category, confidence string) error {
	value, err := strconv.ParseFloat(confidence, 64)
	if err != nil {
		return err
	}
	GetTestContext(ctx).suggester.set(&adapter.CategorySuggestion{
		Category:   category,
		Confidence: value,
		Reasoning:  "matched by test double",
	}, nil)
	return nil
}

func theAIProviderFailsWith(ctx context.Context, message string) error {
	GetTestContext(ctx).suggester.set(nil, errors.New(message))
	return nil
}

func theStatsCacheIsUnavailable(ctx context.Context) error {
	GetTestContext(ctx).redis.Server.SetError("LOADING cache unavailable")
	return nil
}

func theStatsCacheShouldHoldMonth(ctx context.Context, month string) error {
	tc := GetTestContext(ctx)
	for _, key := range tc.redis.Server.Keys() {
		if strings.HasSuffix(key, ":monthly:"+month) {
			return nil
		}
	}
	return fmt.Errorf("no cached aggregate for %s, keys: %v", month, tc.redis.Server.Keys())
}
