package roku

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html/charset"

	"rokuwake/internal/domain"
	"rokuwake/internal/infra"
)

// Client speaks the External Control Protocol of a single device.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(dev domain.Device) *Client {
	return NewClientWithURL(dev.BaseURL())
}

func NewClientWithURL(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// DeviceInfo is the subset of /query/device-info used for display.
type DeviceInfo struct {
	XMLName      xml.Name `xml:"device-info"`
	VendorName   string   `xml:"vendor-name"`
	ModelName    string   `xml:"model-name"`
	FriendlyName string   `xml:"friendly-device-name"`
	SerialNumber string   `xml:"serial-number"`
	PowerMode    string   `xml:"power-mode"`
}

type appList struct {
	XMLName xml.Name `xml:"apps"`
	Apps    []struct {
		ID      string `xml:"id,attr"`
		Type    string `xml:"type,attr"`
		Version string `xml:"version,attr"`
		Name    string `xml:",chardata"`
	} `xml:"app"`
}

func (c *Client) DeviceInfo(ctx context.Context) (*DeviceInfo, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/query/device-info")
	if err != nil {
		return nil, fmt.Errorf("fetching device info: %w", err)
	}

	info, err := parseDeviceInfo(body)
	if err != nil {
		return nil, fmt.Errorf("parsing device info: %w", err)
	}

	return info, nil
}

// ListApps returns the installed apps in the order the device reports them.
func (c *Client) ListApps(ctx context.Context) ([]domain.App, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/query/apps")
	if err != nil {
		return nil, fmt.Errorf("%w: fetching apps: %w", domain.ErrDeviceUnreachable, err)
	}

	var list appList
	if err := decodeXML(body, &list); err != nil {
		return nil, fmt.Errorf("%w: parsing apps: %w", domain.ErrDeviceUnreachable, err)
	}

	apps := make([]domain.App, 0, len(list.Apps))
	for _, a := range list.Apps {
		apps = append(apps, domain.App{
			ID:      a.ID,
			Name:    strings.TrimSpace(a.Name),
			Type:    a.Type,
			Version: a.Version,
		})
	}

	return apps, nil
}

func (c *Client) Apps(ctx context.Context) (domain.AppCatalog, error) {
	apps, err := c.ListApps(ctx)
	if err != nil {
		return nil, err
	}
	return domain.NewAppCatalog(apps), nil
}

func (c *Client) Keypress(ctx context.Context, key domain.Key) error {
	step := domain.Step{Kind: domain.StepKeypress, Key: key}
	if _, err := c.doRequest(ctx, http.MethodPost, step.Path()); err != nil {
		return fmt.Errorf("sending keypress %s: %w", key, err)
	}
	return nil
}

func (c *Client) Launch(ctx context.Context, appID string) error {
	step := domain.Step{Kind: domain.StepLaunch, AppID: appID}
	if _, err := c.doRequest(ctx, http.MethodPost, step.Path()); err != nil {
		return fmt.Errorf("launching app %s: %w", appID, err)
	}
	return nil
}

func (c *Client) doRequest(ctx context.Context, method, path string) ([]byte, error) {
	var body io.Reader
	if method == http.MethodPost {
		// ECP expects an empty form body on POST.
		body = http.NoBody
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if err := infra.CheckStatus(resp, respBody); err != nil {
		return nil, err
	}

	return respBody, nil
}

func parseDeviceInfo(body []byte) (*DeviceInfo, error) {
	var info DeviceInfo
	if err := decodeXML(body, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func decodeXML(body []byte, v any) error {
	dec := xml.NewDecoder(bytes.NewReader(body))
	dec.CharsetReader = charset.NewReaderLabel
	return dec.Decode(v)
}
