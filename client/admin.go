package client

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/saludmexfood/saluds-mx-food/models"
)

// ErrBadPrice is the local rejection for a price field that does not parse
// to a non-negative integer. No request is sent when it fires.
var ErrBadPrice = errors.New("price_cents must be a non-negative integer")

// ParsePriceCents validates a raw price field from a form draft.
func ParsePriceCents(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0, ErrBadPrice
	}
	return n, nil
}

// Login exchanges the admin password for a bearer token and stores it.
func (c *Client) Login(password string) error {
	var resp struct {
		AccessToken string `json:"access_token"`
	}
	if err := c.do("POST", "/admin/auth/login", map[string]string{"password": password}, false, &resp); err != nil {
		return err
	}
	if resp.AccessToken == "" {
		return &APIError{Message: "login response missing access token"}
	}
	c.Tokens.Set(resp.AccessToken)
	return nil
}

// -------- Menu administration --------

type MenuWeekDraft struct {
	StartsAt         time.Time `json:"starts_at"`
	SellingDays      string    `json:"selling_days"`
	Status           string    `json:"status,omitempty"`
	Published        bool      `json:"published"`
	PickupWindowText string    `json:"pickup_window_text,omitempty"`
	NotesText        string    `json:"notes_text,omitempty"`
}

type MenuItemDraft struct {
	MenuWeekID  uint   `json:"menu_week_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	PhotoURL    string `json:"photo_url,omitempty"`
	PriceCents  int    `json:"price_cents"`
	Available   *bool  `json:"available,omitempty"`
}

func (c *Client) MenuWeeks() ([]models.MenuWeek, error) {
	var weeks []models.MenuWeek
	err := c.do("GET", "/admin/menu/weeks/", nil, true, &weeks)
	return weeks, err
}

// CreateMenuWeek validates the draft locally before sending.
func (c *Client) CreateMenuWeek(draft MenuWeekDraft) (models.MenuWeek, error) {
	var week models.MenuWeek
	if draft.StartsAt.IsZero() {
		return week, errors.New("starts_at is required")
	}
	if strings.TrimSpace(draft.SellingDays) == "" {
		return week, errors.New("selling_days is required")
	}
	err := c.do("POST", "/admin/menu/weeks/", draft, true, &week)
	return week, err
}

func (c *Client) UpdateMenuWeek(id uint, patch map[string]interface{}) (models.MenuWeek, error) {
	var week models.MenuWeek
	err := c.do("PATCH", fmt.Sprintf("/admin/menu/weeks/%d", id), patch, true, &week)
	return week, err
}

func (c *Client) WeekItems(weekID uint) ([]models.MenuItem, error) {
	var items []models.MenuItem
	err := c.do("GET", fmt.Sprintf("/admin/menu/weeks/%d/items", weekID), nil, true, &items)
	return items, err
}

func (c *Client) MenuItems() ([]models.MenuItem, error) {
	var items []models.MenuItem
	err := c.do("GET", "/admin/menu/items/", nil, true, &items)
	return items, err
}

// CreateMenuItem rejects a blank name or a bad price draft locally; the raw
// price string comes straight from the form field.
func (c *Client) CreateMenuItem(draft MenuItemDraft, rawPrice string) (models.MenuItem, error) {
	var item models.MenuItem
	if strings.TrimSpace(draft.Name) == "" {
		return item, errors.New("name is required")
	}
	price, err := ParsePriceCents(rawPrice)
	if err != nil {
		return item, err
	}
	draft.PriceCents = price
	err = c.do("POST", "/admin/menu/items/", draft, true, &item)
	return item, err
}

func (c *Client) UpdateMenuItem(id uint, patch map[string]interface{}) (models.MenuItem, error) {
	var item models.MenuItem
	if raw, ok := patch["price_cents"].(string); ok {
		price, err := ParsePriceCents(raw)
		if err != nil {
			return item, err
		}
		patch["price_cents"] = price
	}
	err := c.do("PATCH", fmt.Sprintf("/admin/menu/items/%d", id), patch, true, &item)
	return item, err
}

// -------- Order administration --------

type ItemCount struct {
	MenuItemID uint `json:"menu_item_id"`
	TotalQty   int  `json:"total_qty"`
}

type DeliveryEntry struct {
	OrderID uint    `json:"order_id"`
	Name    string  `json:"name"`
	Phone   string  `json:"phone"`
	Address *string `json:"address"`
	Comment *string `json:"comment"`
}

type OrdersTally struct {
	TotalOrders         int64           `json:"total_orders"`
	TotalPickupOrders   int64           `json:"total_pickup_orders"`
	TotalDeliveryOrders int64           `json:"total_delivery_orders"`
	ItemCounts          []ItemCount     `json:"item_counts"`
	DeliveryList        []DeliveryEntry `json:"delivery_list"`
}

// DeliveryNames indexes the tally's delivery list by order id for DisplayName.
func (t OrdersTally) DeliveryNames() map[uint]string {
	names := make(map[uint]string, len(t.DeliveryList))
	for _, entry := range t.DeliveryList {
		if entry.Name != "" {
			names[entry.OrderID] = entry.Name
		}
	}
	return names
}

func (c *Client) Orders() ([]models.Order, error) {
	var orders []models.Order
	err := c.do("GET", "/api/orders", nil, true, &orders)
	return orders, err
}

func (c *Client) OrdersTally() (OrdersTally, error) {
	var tally OrdersTally
	err := c.do("GET", "/api/orders/tally", nil, true, &tally)
	return tally, err
}

// UpdateOrderStatus patches the status and returns the updated order. When the
// response omits the status, the locally requested one is applied.
func (c *Client) UpdateOrderStatus(orderID uint, status models.OrderStatus) (models.Order, error) {
	var order models.Order
	err := c.do("PATCH", fmt.Sprintf("/api/orders/%d/status", orderID),
		map[string]string{"status": string(status)}, true, &order)
	if err != nil {
		return order, err
	}
	if order.Status == "" {
		order.Status = status
	}
	return order, nil
}

// -------- Review queues --------

func (c *Client) Queues() (map[string][]string, error) {
	var resp struct {
		Queues map[string][]string `json:"queues"`
	}
	err := c.do("GET", "/api/queues", nil, true, &resp)
	return resp.Queues, err
}

func (c *Client) QueueFile(queue, file string) (map[string]interface{}, error) {
	var payload map[string]interface{}
	path := "/api/queue/get?queue=" + url.QueryEscape(queue) + "&file=" + url.QueryEscape(file)
	err := c.do("GET", path, nil, true, &payload)
	return payload, err
}

type Decision struct {
	Queue     string `json:"queue,omitempty"`
	Agent     string `json:"agent,omitempty"`
	File      string `json:"file"`
	Decision  string `json:"decision"`
	Timestamp string `json:"timestamp,omitempty"`
}

func (c *Client) SubmitDecision(d Decision) error {
	var resp struct {
		OK    bool   `json:"ok"`
		Error string `json:"error"`
	}
	if err := c.do("POST", "/api/decision", d, true, &resp); err != nil {
		return err
	}
	if !resp.OK {
		return &APIError{Message: resp.Error}
	}
	return nil
}

// -------- System controls --------

// SystemAction fires one operational switch: pause, resume, stop, run_now,
// clear_queues, clear_approvals, or clear_logs. A 404 maps to
// ErrNotImplemented.
func (c *Client) SystemAction(action string) error {
	var resp struct {
		OK    bool   `json:"ok"`
		Error string `json:"error"`
	}
	err := c.do("POST", "/api/system/"+action, nil, true, &resp)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == 404 {
			return ErrNotImplemented
		}
		return err
	}
	if !resp.OK {
		return &APIError{Message: resp.Error}
	}
	return nil
}
