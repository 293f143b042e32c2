package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/ukydev/vehicle-viewer/internal/config"
	"github.com/ukydev/vehicle-viewer/internal/models"
)

var ErrUnexpectedStatus = errors.New("unexpected response status")

// VehicleLister is what screens need from the API.
type VehicleLister interface {
	ListVehicles(ctx context.Context) models.ListResult
}

// Client talks to the vehicles API. Failures never escape as errors: they are logged
// and reported through the Outcome of the returned result.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        logrus.FieldLogger
}

// NewClient creates a client for cfg.BaseURL.
func NewClient(cfg *config.APIConfig, logger logrus.FieldLogger) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        logger,
	}
}

// BaseURL returns the API root the client was configured with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListVehicles fetches every vehicle in server order.
func (c *Client) ListVehicles(ctx context.Context) models.ListResult {
	url := c.baseURL + "/vehicles"

	var vehicles []models.Vehicle
	if err := c.do(ctx, http.MethodGet, url, nil, &vehicles); err != nil {
		entry := c.log.WithError(err).WithFields(logrus.Fields{
			"op":  "list_vehicles",
			"url": url,
		})
		// The caller went away; nobody will see the result.
		if errors.Is(err, context.Canceled) {
			entry.Debug("Fetching vehicles canceled")
		} else {
			entry.Error("Error fetching vehicles")
		}
		return models.ListFailed(err)
	}

	c.log.WithFields(logrus.Fields{"op": "list_vehicles", "count": len(vehicles)}).Debug("Fetched vehicles")
	return models.ListSucceeded(vehicles)
}

// CreateVehicle posts v and returns the stored record with its server-assigned id.
func (c *Client) CreateVehicle(ctx context.Context, v models.NewVehicle) models.CreateResult {
	url := c.baseURL + "/vehicles"

	data, err := json.Marshal(v)
	if err != nil {
		err = fmt.Errorf("failed to marshal vehicle: %w", err)
		c.log.WithError(err).WithField("op", "create_vehicle").Error("Error adding vehicle")
		return models.CreateFailed(err)
	}

	var created models.Vehicle
	if err := c.do(ctx, http.MethodPost, url, data, &created); err != nil {
		c.log.WithError(err).WithFields(logrus.Fields{
			"op":  "create_vehicle",
			"url": url,
		}).Error("Error adding vehicle")
		return models.CreateFailed(err)
	}

	c.log.WithFields(logrus.Fields{
		"op":         "create_vehicle",
		"vehicle_id": created.ID,
		"name":       created.Name,
	}).Info("Created vehicle")
	return models.CreateSucceeded(created)
}

// do sends the request and decodes a 2xx JSON body into out.
func (c *Client) do(ctx context.Context, method, url string, body []byte, out interface{}) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
