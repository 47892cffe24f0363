package client

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"dinebook/pkg/datetime"
	apperrors "dinebook/pkg/errors"
	"dinebook/pkg/middleware"
	"dinebook/pkg/model"

	"github.com/google/uuid"
)

const bookingsPath = "/api/bookings"

// BookingClient talks to the bookings API. It satisfies dialogue.Booker.
type BookingClient struct {
	httpClient *HttpClient
}

func NewBookingClient(baseURL string, timeout time.Duration) *BookingClient {
	return &BookingClient{
		httpClient: NewHttpClient(baseURL, timeout),
	}
}

// Create posts a booking with a fresh idempotency key.
func (c *BookingClient) Create(ctx context.Context, req *model.CreateBookingRequest) (*model.BookingResult, error) {
	resp, err := c.httpClient.POSTWithHeaders(ctx, bookingsPath, req, map[string]string{
		middleware.DefaultIdempotencyHeader: uuid.NewString(),
	})
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, responseError(resp)
	}

	var result model.BookingResult
	if err := resp.DecodeJSON(&result); err != nil {
		return nil, fmt.Errorf("could not decode booking result:\n%s\n%w", resp.ToString(), err)
	}
	return &result, nil
}

// List returns every booking, or those on day when it is non-nil.
func (c *BookingClient) List(ctx context.Context, day *time.Time) ([]*model.Booking, error) {
	q := url.Values{}
	if day != nil {
		q.Set("date", datetime.FormatDate(*day))
	}

	resp, err := c.httpClient.GET(ctx, bookingsPath, q)
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, responseError(resp)
	}

	var wrapper struct {
		Bookings []*model.Booking `json:"bookings"`
	}
	if err := resp.DecodeJSON(&wrapper); err != nil {
		return nil, fmt.Errorf("could not decode booking list:\n%s\n%w", resp.ToString(), err)
	}
	return wrapper.Bookings, nil
}

func (c *BookingClient) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	resp, err := c.httpClient.GET(ctx, bookingsPath+"/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, responseError(resp)
	}

	var wrapper struct {
		Booking *model.Booking `json:"booking"`
	}
	if err := resp.DecodeJSON(&wrapper); err != nil {
		return nil, fmt.Errorf("could not decode booking:\n%s\n%w", resp.ToString(), err)
	}
	return wrapper.Booking, nil
}

func (c *BookingClient) Cancel(ctx context.Context, id string) error {
	resp, err := c.httpClient.DELETE(ctx, bookingsPath+"/"+url.PathEscape(id))
	if err != nil {
		return err
	}
	if !resp.IsSuccess() {
		return responseError(resp)
	}
	return nil
}

// responseError rebuilds the AppError the server rendered.
func responseError(resp *Response) error {
	var body struct {
		Code string `json:"code"`
	}
	_ = resp.DecodeJSON(&body)
	if body.Code == "" {
		body.Code = apperrors.CodeInternal
	}
	return apperrors.New(body.Code, GetErrorMessage(resp), resp.StatusCode)
}
