//go:build integration

package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/anbu-gynaecare/webapp/config"
	"github.com/anbu-gynaecare/webapp/internal/infra/dependency"
	"github.com/anbu-gynaecare/webapp/internal/infra/redis"
	"github.com/anbu-gynaecare/webapp/internal/integration/cache"
	"github.com/anbu-gynaecare/webapp/internal/integration/persistence/model"
	"github.com/anbu-gynaecare/webapp/test/integration/mock"
)

const (
	testTokenSecret = "remote-api-signing-key"
	testPassword    = "Secret123!"
	sessionCookie   = "anbu_session"
)

var tags string

func init() {
	flag.StringVar(&tags, "scenarios", "", "tags to run")
}

func TestFeatures(t *testing.T) {
	flag.Parse()

	suite := godog.TestSuite{
		Name: "anbu-webapp",
		ScenarioInitializer: func(s *godog.ScenarioContext) {
			InitializeScenario(s)
		},
		Options: &godog.Options{
			Format:      "pretty",
			Paths:       []string{"../features"},
			Tags:        tags,
			Concurrency: 1,
			Strict:      true,
			TestingT:    t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

type testContext struct {
	client      *http.Client
	response    *response
	headers     map[string]string
	accessToken string
}

type response struct {
	status  int
	body    any
	cookies []*http.Cookie
}

var (
	serverInit sync.Once
	serverURL  string
	testDB     *mock.Db
	testRedis  *mock.Redis
	remoteAPI  *mock.ApiMock
)

func InitializeScenario(ctx *godog.ScenarioContext) {
	test := &testContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before()
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)

	// Remote API steps
	ctx.Given(`^the remote API responds to "([^"]*)" "([^"]*)" with status (\d+) and body:$`, test.theRemoteAPIRespondsWithBody)
	ctx.Given(`^the remote API responds to "([^"]*)" "([^"]*)" with status (\d+)$`, test.theRemoteAPIResponds)
	ctx.Given(`^the remote API answers call (\d+) of "([^"]*)" "([^"]*)" with status (\d+) and body:$`, test.theRemoteAPIAnswersCall)

	// Session steps
	ctx.Step(`^I am logged in as "([^"]*)"$`, test.iAmLoggedInAs)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)
	ctx.When(`^I wait (\d+) milliseconds$`, test.iWaitMilliseconds)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) items$`, test.theResponseFieldShouldHaveItems)
	ctx.Then(`^the response should set the session cookie$`, test.theResponseShouldSetTheSessionCookie)

	// Remote API assertion steps
	ctx.Then(`^the remote API should have received (\d+) "([^"]*)" requests? to "([^"]*)"$`, test.theRemoteAPIShouldHaveReceived)
	ctx.Then(`^the last "([^"]*)" request to "([^"]*)" should carry the session token$`, test.theLastRequestShouldCarryTheSessionToken)
	ctx.Then(`^the last "([^"]*)" request to "([^"]*)" should have no token$`, test.theLastRequestShouldHaveNoToken)
	ctx.Then(`^the last "([^"]*)" request to "([^"]*)" should have the query "([^"]*)" with "([^"]*)"$`, test.theLastRequestShouldHaveTheQuery)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)
}

func (t *testContext) before() error {
	t.startServer()

	jar, err := cookiejar.New(nil)
	if err != nil {
		return err
	}
	t.client = &http.Client{Timeout: 10 * time.Second, Jar: jar}
	t.headers = make(map[string]string)
	t.response = nil
	t.accessToken = ""

	remoteAPI.Reset()
	testRedis.Clear()
	return testDB.ClearDB()
}

func (t *testContext) startServer() {
	serverInit.Do(func() {
		gin.SetMode(gin.TestMode)

		remoteAPI = mock.NewApiServer()
		remoteAPI.Start()

		testRedis = mock.NewRedis()
		testDB = mock.NewDb(map[string]any{
			"sessions":          &model.SessionModel{},
			"onboarding_drafts": &model.OnboardingDraftModel{},
		})

		cfg := config.Load()
		cfg.Server.Environment = "test"
		cfg.API.BaseURL = remoteAPI.GetUrl()
		cfg.API.Timeout = 5 * time.Second
		cfg.Fetch.Retry = 0
		cfg.Fetch.RetryDelay = 0
		cfg.Fetch.SearchDebounce = 20 * time.Millisecond
		cfg.Fetch.PageSize = 2

		injector := dependency.NewInjector(cfg, testDB.DbConn, cache.NewRedisCache(testRedis.Client), dependency.HealthCheckers{
			Database: func() bool {
				sqlDB, err := testDB.DbConn.DB()
				return err == nil && sqlDB.Ping() == nil
			},
			Cache: redis.HealthChecker(testRedis.Client),
		})

		server := httptest.NewServer(injector.Router.Setup(cfg.Server.Environment))
		serverURL = server.URL
	})
}

func (t *testContext) theAPIServerIsRunning() error {
	resp, err := t.client.Get(serverURL + "/health")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned %d", resp.StatusCode)
	}
	return nil
}

// signToken returns an access token shaped like the remote API's.
func signToken(email string, ttl time.Duration) string {
	claims := jwt.RegisteredClaims{
		Subject:   email,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testTokenSecret))
	if err != nil {
		panic(err)
	}
	return token
}

func (t *testContext) theRemoteAPIRespondsWithBody(method, path string, status int, body *godog.DocString) error {
	payload, err := t.decodeBody(body.Content)
	if err != nil {
		return err
	}
	remoteAPI.SetResponse(-1, method, path, status, payload)
	return nil
}

func (t *testContext) theRemoteAPIResponds(method, path string, status int) error {
	remoteAPI.SetResponse(-1, method, path, status, map[string]any{"message": http.StatusText(status)})
	return nil
}

func (t *testContext) theRemoteAPIAnswersCall(index int, method, path string, status int, body *godog.DocString) error {
	payload, err := t.decodeBody(body.Content)
	if err != nil {
		return err
	}
	remoteAPI.SetResponse(index-1, method, path, status, payload)
	return nil
}

// decodeBody parses a JSON doc string, replacing {{token}} with a freshly
// signed access token.
func (t *testContext) decodeBody(content string) (any, error) {
	if strings.Contains(content, "{{token}}") {
		t.accessToken = signToken("user@anbu.test", time.Hour)
		content = strings.ReplaceAll(content, "{{token}}", t.accessToken)
	}
	var payload any
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return nil, fmt.Errorf("invalid JSON in step: %w", err)
	}
	return payload, nil
}

func (t *testContext) iAmLoggedInAs(email string) error {
	t.accessToken = signToken(email, time.Hour)
	user := map[string]any{
		"id":    "user-1",
		"name":  "Ada",
		"email": email,
		"age":   28,
	}
	remoteAPI.SetResponse(-1, http.MethodPost, "/auth/login", http.StatusOK, map[string]any{
		"message": "Login successful",
		"data":    map[string]any{"user": user, "accessToken": t.accessToken},
	})
	remoteAPI.SetResponse(-1, http.MethodGet, "/users/me", http.StatusOK, map[string]any{"data": user})

	payload, _ := json.Marshal(map[string]string{"email": email, "password": testPassword})
	if err := t.executeRequest(http.MethodPost, "/api/auth/login", payload); err != nil {
		return err
	}
	if t.response.status != http.StatusOK {
		return fmt.Errorf("login failed with status %d: %v", t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = value
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	return t.executeRequest(method, path, nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	return t.executeRequest(method, path, []byte(body.Content))
}

func (t *testContext) iWaitMilliseconds(ms int) error {
	time.Sleep(time.Duration(ms) * time.Millisecond)
	return nil
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, serverURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{status: resp.StatusCode, cookies: resp.Cookies()}

	var body map[string]any
	if err := json.Unmarshal(bodyBytes, &body); err != nil {
		t.response.body = string(bodyBytes)
	} else {
		t.response.body = body
	}
	return nil
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expectedStatus, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) responseObject() (map[string]any, error) {
	if t.response == nil {
		return nil, errors.New("no response received")
	}
	body, ok := t.response.body.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}
	return body, nil
}

func (t *testContext) theResponseShouldContain(field string) error {
	body, err := t.responseObject()
	if err != nil {
		return err
	}
	if _, exists := body[field]; !exists {
		return fmt.Errorf("response does not contain field '%s': %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	body, err := t.responseObject()
	if err != nil {
		return err
	}

	value := getFieldValue(body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}

	actualValue := fmt.Sprintf("%v", value)
	if actualValue != expectedValue {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	body, err := t.responseObject()
	if err != nil {
		return err
	}
	if getFieldValue(body, field) == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldHaveItems(field string, count int) error {
	body, err := t.responseObject()
	if err != nil {
		return err
	}
	items, ok := getFieldValue(body, field).([]any)
	if !ok {
		return fmt.Errorf("field '%s' is not a list: %v", field, body)
	}
	if len(items) != count {
		return fmt.Errorf("field '%s' expected %d items, got %d", field, count, len(items))
	}
	return nil
}

func (t *testContext) theResponseShouldSetTheSessionCookie() error {
	if t.response == nil {
		return errors.New("no response received")
	}
	for _, c := range t.response.cookies {
		if c.Name == sessionCookie && c.Value != "" && c.HttpOnly {
			return nil
		}
	}
	return fmt.Errorf("response did not set an HttpOnly %s cookie", sessionCookie)
}

func (t *testContext) theRemoteAPIShouldHaveReceived(count int, method, path string) error {
	got := len(remoteAPI.Requests(method, path))
	if got != count {
		return fmt.Errorf("expected %d %s %s requests, got %d", count, method, path, got)
	}
	return nil
}

func lastRemoteRequest(method, path string) (mock.RemoteRequest, error) {
	requests := remoteAPI.Requests(method, path)
	if len(requests) == 0 {
		return mock.RemoteRequest{}, fmt.Errorf("no %s %s request received", method, path)
	}
	return requests[len(requests)-1], nil
}

func (t *testContext) theLastRequestShouldCarryTheSessionToken(method, path string) error {
	req, err := lastRemoteRequest(method, path)
	if err != nil {
		return err
	}
	want := "Bearer " + t.accessToken
	if got := req.Headers["Authorization"]; got != want {
		return fmt.Errorf("expected Authorization %q, got %q", want, got)
	}
	return nil
}

func (t *testContext) theLastRequestShouldHaveNoToken(method, path string) error {
	req, err := lastRemoteRequest(method, path)
	if err != nil {
		return err
	}
	if got, ok := req.Headers["Authorization"]; ok {
		return fmt.Errorf("expected no Authorization header, got %q", got)
	}
	return nil
}

func (t *testContext) theLastRequestShouldHaveTheQuery(method, path, key, value string) error {
	req, err := lastRemoteRequest(method, path)
	if err != nil {
		return err
	}
	if got := req.Query[key]; got != value {
		return fmt.Errorf("expected query %s=%q, got %q", key, value, got)
	}
	return nil
}

func (t *testContext) modelSlice(table string) (reflect.Value, error) {
	entity, ok := testDB.GetModel(table)
	if !ok {
		return reflect.Value{}, fmt.Errorf("table '%s' not found in models", table)
	}
	entityType := reflect.TypeOf(entity).Elem()
	slicePtr := reflect.New(reflect.SliceOf(entityType))
	slicePtr.Elem().Set(reflect.MakeSlice(reflect.SliceOf(entityType), 0, 0))
	return slicePtr, nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	slicePtr, err := t.modelSlice(table)
	if err != nil {
		return err
	}
	if err := testDB.DbConn.Find(slicePtr.Interface()).Error; err != nil {
		return err
	}
	if count := slicePtr.Elem().Len(); count != quantity {
		return fmt.Errorf("expected %d objects in '%s', got %d", quantity, table, count)
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInWithTheValues(quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(content.Content), &criteria); err != nil {
		return err
	}

	slicePtr, err := t.modelSlice(table)
	if err != nil {
		return err
	}
	query := testDB.DbConn
	for key, value := range criteria {
		query = query.Where(fmt.Sprintf("%s = ?", key), value)
	}
	if err := query.Find(slicePtr.Interface()).Error; err != nil {
		return err
	}
	if count := slicePtr.Elem().Len(); count != quantity {
		return fmt.Errorf("expected %d objects in '%s' with criteria %v, got %d", quantity, table, criteria, count)
	}
	return nil
}

// getFieldValue walks a dot separated path through maps and list indexes.
func getFieldValue(object any, dotSeparatedField string) any {
	field := object
	for _, part := range strings.Split(dotSeparatedField, ".") {
		switch v := field.(type) {
		case map[string]any:
			field = v[part]
		case []any:
			i, err := strconv.Atoi(part)
			if err != nil || i < 0 || i >= len(v) {
				return nil
			}
			field = v[i]
		default:
			return nil
		}
	}
	return field
}
