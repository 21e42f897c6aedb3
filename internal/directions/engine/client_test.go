package engine

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/rs/zerolog"

	"github.com/routecraft/routecraft/internal/directions"
	"github.com/routecraft/routecraft/internal/params"
)

func TestClient_ComputeDirections_Success(t *testing.T) {
	// Load test fixture
	respBody, err := os.ReadFile("testdata/search_response.json")
	if err != nil {
		t.Fatalf("failed to load test fixture: %v", err)
	}

	var capturedBody searchRequest

	// Create test server
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Verify request
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.Header.Get("Authorization") != "mock123" {
			t.Errorf("expected Authorization header 'mock123', got '%s'", r.Header.Get("Authorization"))
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("expected Content-Type 'application/json', got '%s'", r.Header.Get("Content-Type"))
		}

		// Verify URL path contains profile
		expectedPath := "/v1/search/cycling-regular"
		if r.URL.Path != expectedPath {
			t.Errorf("expected path %s, got %s", expectedPath, r.URL.Path)
		}

		if err := json.NewDecoder(r.Body).Decode(&capturedBody); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(respBody)
	}))
	defer server.Close()

	// Create client
	client := NewClient(ClientConfig{
		APIKey:     "mock123",
		BaseURL:    server.URL,
		HTTPClient: &mockHTTPClient{client: server.Client()},
		Logger:     zerolog.Nop(),
	})

	gradient := 6
	cyclingParams := &params.CyclingParams{MaximumGradient: &gradient}
	green := params.NewWeighting("green")
	green.AddParam("factor", "0.40")
	cyclingParams.AddWeighting(green)

	borders := params.BordersControlled

	resp, err := client.ComputeDirections(context.Background(), directions.Request{
		Origin:      directions.Coordinate{Lat: 52.3676, Lon: 4.9041},
		Destination: directions.Coordinate{Lat: 52.0907, Lon: 5.1214},
		Search: directions.SearchParameters{
			Profile:       params.ProfileCyclingRegular,
			AvoidFeatures: params.AvoidFerries | params.AvoidSteps,
			AvoidBorders:  &borders,
			ProfileParams: cyclingParams,
		},
		MaxAlternatives: 2,
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Verify wire request
	if len(capturedBody.Coordinates) != 2 {
		t.Fatalf("expected 2 coordinate pairs, got %d", len(capturedBody.Coordinates))
	}
	// Coordinates go over the wire in [lon, lat] order
	if capturedBody.Coordinates[0][0] != 4.9041 || capturedBody.Coordinates[0][1] != 52.3676 {
		t.Errorf("unexpected origin coordinates: %v", capturedBody.Coordinates[0])
	}
	if capturedBody.AvoidFeatures != params.AvoidFerries|params.AvoidSteps {
		t.Errorf("expected avoid features %d, got %d", params.AvoidFerries|params.AvoidSteps, capturedBody.AvoidFeatures)
	}
	if capturedBody.AvoidBorders != "controlled" {
		t.Errorf("expected avoid borders 'controlled', got '%s'", capturedBody.AvoidBorders)
	}
	if capturedBody.ProfileParams == nil {
		t.Fatal("expected profile params on the wire")
	}
	if got := capturedBody.ProfileParams.Restrictions["gradient"]; got != float64(6) {
		t.Errorf("expected gradient restriction 6, got %v", got)
	}
	if len(capturedBody.ProfileParams.Weightings) != 1 {
		t.Fatalf("expected 1 weighting, got %d", len(capturedBody.ProfileParams.Weightings))
	}
	if w := capturedBody.ProfileParams.Weightings[0]; w.Name != "green" || w.Params["factor"] != "0.40" {
		t.Errorf("unexpected weighting on the wire: %+v", w)
	}

	// Verify response
	if resp.Engine != EngineName {
		t.Errorf("expected engine %s, got %s", EngineName, resp.Engine)
	}
	if len(resp.Routes) != 2 {
		t.Fatalf("expected 2 routes, got %d", len(resp.Routes))
	}

	// Verify first route
	route := resp.Routes[0]
	if route.DistanceMeters != 12345 {
		t.Errorf("expected distance 12345, got %d", route.DistanceMeters)
	}
	if route.DurationSeconds != 2456 {
		t.Errorf("expected duration 2456, got %d", route.DurationSeconds)
	}
	if len(route.Geometry) != 3 {
		t.Errorf("expected 3 decoded geometry points, got %d", len(route.Geometry))
	}
	if route.BoundingBox == nil {
		t.Error("expected bounding box to be set")
	}
	if len(route.Instructions) != 3 {
		t.Fatalf("expected 3 instructions, got %d", len(route.Instructions))
	}
	if route.Summary != "Continue onto Amstelveenseweg" {
		t.Errorf("unexpected route summary: %s", route.Summary)
	}
}

func TestClient_ComputeDirections_NoRouteFound(t *testing.T) {
	// Load test fixture
	respBody, err := os.ReadFile("testdata/error_response.json")
	if err != nil {
		t.Fatalf("failed to load test fixture: %v", err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write(respBody)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		APIKey:     "mock123",
		BaseURL:    server.URL,
		HTTPClient: &mockHTTPClient{client: server.Client()},
		Logger:     zerolog.Nop(),
	})

	_, err = client.ComputeDirections(context.Background(), directions.Request{
		Origin:      directions.Coordinate{Lat: 52.3676, Lon: 4.9041},
		Destination: directions.Coordinate{Lat: 52.0907, Lon: 5.1214},
		Search:      directions.SearchParameters{Profile: params.ProfileCyclingRegular},
	})

	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var dirErr *directions.Error
	if !errors.As(err, &dirErr) {
		t.Fatalf("expected directions.Error, got %T", err)
	}
	if !errors.Is(dirErr.Err, directions.ErrNoRouteFound) {
		t.Errorf("expected ErrNoRouteFound, got %v", dirErr.Err)
	}
}

func TestClient_ComputeDirections_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":{"code":404,"message":"Not found"}}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		APIKey:     "mock123",
		BaseURL:    server.URL,
		HTTPClient: &mockHTTPClient{client: server.Client()},
		Logger:     zerolog.Nop(),
	})

	_, err := client.ComputeDirections(context.Background(), directions.Request{
		Origin:      directions.Coordinate{Lat: 52.3676, Lon: 4.9041},
		Destination: directions.Coordinate{Lat: 52.0907, Lon: 5.1214},
		Search:      directions.SearchParameters{Profile: params.ProfileFootWalking},
	})

	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var dirErr *directions.Error
	if !errors.As(err, &dirErr) {
		t.Fatalf("expected directions.Error, got %T", err)
	}
	if !errors.Is(dirErr.Err, directions.ErrNoRouteFound) {
		t.Errorf("expected ErrNoRouteFound, got %v", dirErr.Err)
	}
}

func TestClient_ComputeDirections_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"code":403,"message":"Rate limit exceeded"}}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		APIKey:     "mock123",
		BaseURL:    server.URL,
		HTTPClient: &mockHTTPClient{client: server.Client()},
		Logger:     zerolog.Nop(),
	})

	_, err := client.ComputeDirections(context.Background(), directions.Request{
		Origin:      directions.Coordinate{Lat: 52.3676, Lon: 4.9041},
		Destination: directions.Coordinate{Lat: 52.0907, Lon: 5.1214},
		Search:      directions.SearchParameters{Profile: params.ProfileDrivingCar},
	})

	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var dirErr *directions.Error
	if !errors.As(err, &dirErr) {
		t.Fatalf("expected directions.Error, got %T", err)
	}
	if !errors.Is(dirErr.Err, directions.ErrRateLimitExceeded) {
		t.Errorf("expected ErrRateLimitExceeded, got %v", dirErr.Err)
	}
}

func TestClient_ComputeDirections_BadRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"code":2003,"message":"Parameter coordinates is invalid"}}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		APIKey:     "mock123",
		BaseURL:    server.URL,
		HTTPClient: &mockHTTPClient{client: server.Client()},
		Logger:     zerolog.Nop(),
	})

	_, err := client.ComputeDirections(context.Background(), directions.Request{
		Origin:      directions.Coordinate{Lat: 52.3676, Lon: 4.9041},
		Destination: directions.Coordinate{Lat: 52.0907, Lon: 5.1214},
		Search:      directions.SearchParameters{Profile: params.ProfileDrivingCar},
	})

	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var dirErr *directions.Error
	if !errors.As(err, &dirErr) {
		t.Fatalf("expected directions.Error, got %T", err)
	}
	if !errors.Is(dirErr.Err, directions.ErrInvalidCoordinates) {
		t.Errorf("expected ErrInvalidCoordinates, got %v", dirErr.Err)
	}
}

func TestClient_ComputeDirections_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"code":500,"message":"Internal server error"}}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		APIKey:     "mock123",
		BaseURL:    server.URL,
		HTTPClient: &mockHTTPClient{client: server.Client()},
		Logger:     zerolog.Nop(),
	})

	_, err := client.ComputeDirections(context.Background(), directions.Request{
		Origin:      directions.Coordinate{Lat: 52.3676, Lon: 4.9041},
		Destination: directions.Coordinate{Lat: 52.0907, Lon: 5.1214},
		Search:      directions.SearchParameters{Profile: params.ProfileDrivingCar},
	})

	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var dirErr *directions.Error
	if !errors.As(err, &dirErr) {
		t.Fatalf("expected directions.Error, got %T", err)
	}
	if !errors.Is(dirErr.Err, directions.ErrEngineUnavailable) {
		t.Errorf("expected ErrEngineUnavailable, got %v", dirErr.Err)
	}
}

// mockFailingClient simulates network errors.
type mockFailingClient struct{}

func (m *mockFailingClient) Do(req *http.Request) (*http.Response, error) {
	return nil, errors.New("network error")
}

func TestClient_ComputeDirections_NetworkError(t *testing.T) {
	client := NewClient(ClientConfig{
		APIKey:     "mock123",
		HTTPClient: &mockFailingClient{},
		Logger:     zerolog.Nop(),
	})

	_, err := client.ComputeDirections(context.Background(), directions.Request{
		Origin:      directions.Coordinate{Lat: 52.3676, Lon: 4.9041},
		Destination: directions.Coordinate{Lat: 52.0907, Lon: 5.1214},
		Search:      directions.SearchParameters{Profile: params.ProfileDrivingCar},
	})

	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var dirErr *directions.Error
	if !errors.As(err, &dirErr) {
		t.Fatalf("expected directions.Error, got %T", err)
	}
	if !errors.Is(dirErr.Err, directions.ErrEngineUnavailable) {
		t.Errorf("expected ErrEngineUnavailable, got %v", dirErr.Err)
	}
}

func TestClient_Name(t *testing.T) {
	client := NewClient(ClientConfig{
		APIKey: "test",
		Logger: zerolog.Nop(),
	})

	if client.Name() != EngineName {
		t.Errorf("expected %s, got %s", EngineName, client.Name())
	}
}

func TestClient_Profiles(t *testing.T) {
	client := NewClient(ClientConfig{
		APIKey: "test",
		Logger: zerolog.Nop(),
	})

	profiles := client.Profiles()
	if len(profiles) != 9 {
		t.Fatalf("expected 9 profiles, got %d", len(profiles))
	}

	seen := make(map[params.ProfileType]bool)
	for _, p := range profiles {
		seen[p] = true
	}
	for _, want := range []params.ProfileType{
		params.ProfileDrivingCar,
		params.ProfileDrivingHGV,
		params.ProfileWheelchair,
	} {
		if !seen[want] {
			t.Errorf("expected %s in supported profiles", want)
		}
	}
}

func TestAvoidPolygonsGeometry(t *testing.T) {
	if got := avoidPolygonsGeometry(nil); got != nil {
		t.Errorf("expected nil geometry for no areas, got %v", got)
	}
}

// mockHTTPClient wraps http.Client to implement HTTPDoer interface.
type mockHTTPClient struct {
	client *http.Client
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return m.client.Do(req)
}
