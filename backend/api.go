package backend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"warungku/models"
)

// Typed wrappers over the documented REST contract. Paths live here and
// nowhere else.

func (c *Client) Menu(ctx context.Context, category string) ([]models.MenuItem, error) {
	path := "/menu"
	var query url.Values
	if category != "" {
		path = "/menu/filter"
		query = url.Values{"category": {category}}
	}
	var items []models.MenuItem
	if err := c.GetJSON(ctx, path, query, "", &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.MenuItem{}
	}
	return items, nil
}

func (c *Client) Cart(ctx context.Context, token string) ([]models.CartLine, error) {
	var lines []models.CartLine
	if err := c.GetJSON(ctx, "/cart", nil, token, &lines); err != nil {
		return nil, err
	}
	if lines == nil {
		lines = []models.CartLine{}
	}
	return lines, nil
}

// UpsertCartLine adds or updates one cart line. Quantity must be positive;
// quantity <= 0 is the caller's cue to remove instead.
func (c *Client) UpsertCartLine(ctx context.Context, token string, menuID, quantity int) error {
	query := url.Values{
		"menuItemId": {strconv.Itoa(menuID)},
		"quantity":   {strconv.Itoa(quantity)},
	}
	return c.Do(ctx, http.MethodPost, "/cart/add", query, nil, "", token, nil)
}

func (c *Client) RemoveCartLine(ctx context.Context, token string, menuID int) error {
	return c.Delete(ctx, "/cart/remove", url.Values{"menuItemId": {strconv.Itoa(menuID)}}, token)
}

func (c *Client) Checkout(ctx context.Context, token string, tableNumber int) (models.Order, error) {
	var order models.Order
	query := url.Values{"tableNumber": {strconv.Itoa(tableNumber)}}
	err := c.Do(ctx, http.MethodPost, "/cart/checkout", query, nil, "", token, &order)
	return order, err
}

func (c *Client) MyOrders(ctx context.Context, token string) ([]models.Order, error) {
	var orders []models.Order
	if err := c.GetJSON(ctx, "/order/my", nil, token, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) AllOrders(ctx context.Context, token string) ([]models.Order, error) {
	var orders []models.Order
	if err := c.GetJSON(ctx, "/order", nil, token, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateOrderStatus advances one order. The backend expects the new status as
// a raw JSON string literal in the body.
func (c *Client) UpdateOrderStatus(ctx context.Context, token string, orderID int, status string) error {
	return c.PutJSON(ctx, fmt.Sprintf("/order/%d/status", orderID), status, token, nil)
}

func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var resp struct {
		Token string `json:"token"`
	}
	body := map[string]string{"username": username, "password": password}
	if err := c.PostJSON(ctx, "/auth/login", nil, body, "", &resp); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", fmt.Errorf("login response carried no token")
	}
	return resp.Token, nil
}

// Register creates a customer account. The backend answers 409 when the
// username is taken; role assignment is entirely server-side.
func (c *Client) Register(ctx context.Context, reg models.Registration) error {
	return c.PostJSON(ctx, "/auth/register", nil, reg, "", nil)
}

func (c *Client) Me(ctx context.Context, token string) (models.Customer, error) {
	var me models.Customer
	err := c.GetJSON(ctx, "/auth/me", nil, token, &me)
	return me, err
}

// MenuCount returns the total number of menu items for the dashboard.
func (c *Client) MenuCount(ctx context.Context, token string) (int, error) {
	var resp struct {
		Count int `json:"count"`
	}
	if err := c.GetJSON(ctx, "/menu/count", nil, token, &resp); err != nil {
		return 0, err
	}
	return resp.Count, nil
}

// OrderCount returns the total number of orders for the dashboard.
func (c *Client) OrderCount(ctx context.Context, token string) (int, error) {
	var resp struct {
		Count int `json:"count"`
	}
	if err := c.GetJSON(ctx, "/order/count", nil, token, &resp); err != nil {
		return 0, err
	}
	return resp.Count, nil
}

// --- Admin menu calls ---

func (c *Client) CreateMenuItem(ctx context.Context, token string, item models.MenuItem) (models.MenuItem, error) {
	var created models.MenuItem
	err := c.PostJSON(ctx, "/menu", nil, item, token, &created)
	return created, err
}

func (c *Client) UpdateMenuItem(ctx context.Context, token string, item models.MenuItem) error {
	return c.PutJSON(ctx, fmt.Sprintf("/menu/%d", item.MenuID), item, token, nil)
}

func (c *Client) DeleteMenuItem(ctx context.Context, token string, menuID int) error {
	return c.Delete(ctx, fmt.Sprintf("/menu/%d", menuID), nil, token)
}

// UploadMenuImage streams a processed image file to the backend and returns
// the imageUrl it assigns. This is the dependent second step of a menu edit;
// callers report its failure as a warning, never as a rollback.
func (c *Client) UploadMenuImage(ctx context.Context, token string, menuID int, localPath string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("open staged image: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", filepath.Base(localPath))
	if err != nil {
		return "", fmt.Errorf("build multipart form: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return "", fmt.Errorf("copy staged image: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("close multipart form: %w", err)
	}

	var resp struct {
		ImageURL string `json:"imageUrl"`
	}
	path := fmt.Sprintf("/menu/upload-image/%d", menuID)
	if err := c.Do(ctx, http.MethodPost, path, nil, &buf, mw.FormDataContentType(), token, &resp); err != nil {
		return "", err
	}
	return resp.ImageURL, nil
}
