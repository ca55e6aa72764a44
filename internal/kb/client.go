// Package kb содержит HTTP-клиент базы знаний, из которой наполняются
// шаблонные вопросы.
package kb

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/yourusername/quizgen-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizgen-api/internal/pkg/errors"
)

// Типы значений свойств в базе знаний
const (
	RawTypeScalar   = "scalar"
	RawTypeInstance = "instance"
	RawTypeImage    = "image"
)

// Class - класс базы знаний (например, "Страна")
type Class struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// PropertyType - тип свойства класса
type PropertyType struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	RawType string `json:"raw_type"`
}

// PropertyValue - значение свойства у конкретного экземпляра.
// Для raw_type "instance" RawValue содержит ID экземпляра-ссылки,
// для "image" - относительный путь к файлу.
type PropertyValue struct {
	PropertyType PropertyType `json:"property_type"`
	RawValue     string       `json:"raw_value"`
}

// Instance - экземпляр класса со значениями свойств
type Instance struct {
	ID             uint            `json:"id"`
	Name           string          `json:"name"`
	PropertyValues []PropertyValue `json:"property_values"`
}

// ValueByName возвращает значение свойства по имени или nil
func (i *Instance) ValueByName(name string) *PropertyValue {
	for idx := range i.PropertyValues {
		if i.PropertyValues[idx].PropertyType.Name == name {
			return &i.PropertyValues[idx]
		}
	}
	return nil
}

// ValueByPropertyID возвращает значение свойства по ID типа свойства или nil
func (i *Instance) ValueByPropertyID(propertyID uint) *PropertyValue {
	for idx := range i.PropertyValues {
		if i.PropertyValues[idx].PropertyType.ID == propertyID {
			return &i.PropertyValues[idx]
		}
	}
	return nil
}

// Client - HTTP-клиент базы знаний. Ответы на списки экземпляров кешируются,
// чтобы не дёргать внешний сервис на каждую попытку генерации.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      repository.CacheRepository
	cacheTTL   time.Duration
}

// NewClient создает новый клиент базы знаний.
// cache может быть nil - тогда кеширование отключено.
func NewClient(baseURL string, timeout time.Duration, cache repository.CacheRepository) *Client {
	baseURL = strings.TrimRight(baseURL, "/")
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		cache:      cache,
		cacheTTL:   time.Minute,
	}
}

// getJSON выполняет GET-запрос и декодирует JSON-ответ в dest
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, dest interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("knowledge base request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return apperrors.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("knowledge base returned status %d for %s", resp.StatusCode, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("failed to decode knowledge base response: %w", err)
	}
	return nil
}

// ListClasses возвращает все классы базы знаний
func (c *Client) ListClasses(ctx context.Context) ([]Class, error) {
	var envelope struct {
		Classes []Class `json:"class"`
	}
	if err := c.getJSON(ctx, "/api/class", nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Classes, nil
}

// ListProperties возвращает типы свойств класса
func (c *Client) ListProperties(ctx context.Context, classID uint) ([]PropertyType, error) {
	query := url.Values{"class": {fmt.Sprint(classID)}}
	var envelope struct {
		PropertyTypes []PropertyType `json:"property_type"`
	}
	if err := c.getJSON(ctx, "/api/property_type", query, &envelope); err != nil {
		return nil, err
	}
	return envelope.PropertyTypes, nil
}

// ListInstances возвращает все экземпляры класса
func (c *Client) ListInstances(ctx context.Context, classID uint) ([]Instance, error) {
	cacheKey := fmt.Sprintf("kb:instances:%d", classID)
	if c.cache != nil {
		var cached []Instance
		if err := c.cache.GetJSON(cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	query := url.Values{"class": {fmt.Sprint(classID)}}
	var envelope struct {
		Instances []Instance `json:"instance"`
	}
	if err := c.getJSON(ctx, "/api/instance", query, &envelope); err != nil {
		return nil, err
	}

	if c.cache != nil {
		if err := c.cache.SetJSON(cacheKey, envelope.Instances, c.cacheTTL); err != nil {
			log.Printf("[KBClient] Не удалось закешировать экземпляры класса %d: %v", classID, err)
		}
	}
	return envelope.Instances, nil
}

// GetInstance возвращает экземпляр по ID. ID передаётся строкой, потому что
// именно в таком виде он хранится в raw_value ссылочных свойств.
func (c *Client) GetInstance(ctx context.Context, instanceID string) (*Instance, error) {
	query := url.Values{"instance": {instanceID}}
	var envelope struct {
		Instance *Instance `json:"instance"`
	}
	if err := c.getJSON(ctx, "/api/instance", query, &envelope); err != nil {
		return nil, err
	}
	if envelope.Instance == nil {
		return nil, apperrors.ErrNotFound
	}
	return envelope.Instance, nil
}
