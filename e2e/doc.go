//go:build e2e

// Package e2e provides end-to-end tests running the TodoMVC suites in a real
// browser.
//
// These tests are isolated from the standard test suite via build tags.
// They require a Chrome browser (auto-downloaded by Rod if not present)
// and are intended for CI pipelines or explicit local testing.
//
// Running E2E tests:
//
//	go test -tags=e2e ./e2e/...
//
// Running all tests except E2E:
//
//	go test ./...
//
// E2E tests use:
//   - Rod for browser automation (Chrome DevTools Protocol)
//   - the todomvc-fixture server as the application under test
//   - BrowserClient from pkg/todomvc/testutil as the Session
//
// Set E2E_BASE_URL to target another deployment instead of the fixture, and
// E2E_DRIVER=playwright to drive Chromium through Playwright.
//
// Test isolation:
// The fixture starts once on a random port. Each test launches its own
// incognito browser, so local storage never leaks between tests.
package e2e
