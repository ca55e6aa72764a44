package kb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/yourusername/quizgen-api/internal/pkg/errors"
)

func TestListInstances(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/instance", r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("class"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"instance": [
			{"id": 1, "name": "Франция", "property_values": [
				{"property_type": {"id": 10, "name": "capital", "raw_type": "scalar"}, "raw_value": "Париж"}
			]},
			{"id": 2, "name": "Германия", "property_values": []}
		]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, nil)
	instances, err := client.ListInstances(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, instances, 2)
	assert.Equal(t, "Франция", instances[0].Name)

	pv := instances[0].ValueByPropertyID(10)
	require.NotNil(t, pv)
	assert.Equal(t, "Париж", pv.RawValue)
	assert.Equal(t, RawTypeScalar, pv.PropertyType.RawType)
	assert.Nil(t, instances[0].ValueByPropertyID(99))
}

func TestGetInstance(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "7", r.URL.Query().Get("instance"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"instance": {"id": 7, "name": "Париж", "property_values": []}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, nil)
	inst, err := client.GetInstance(context.Background(), "7")
	require.NoError(t, err)
	assert.Equal(t, uint(7), inst.ID)
	assert.Equal(t, "Париж", inst.Name)
}

func TestGetInstance_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, nil)
	_, err := client.GetInstance(context.Background(), "404")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestGetInstance_NullEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"instance": null}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, nil)
	_, err := client.GetInstance(context.Background(), "8")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestListClasses_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, nil)
	_, err := client.ListClasses(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrNotFound)
}

func TestValueByName(t *testing.T) {
	inst := &Instance{
		PropertyValues: []PropertyValue{
			{PropertyType: PropertyType{ID: 1, Name: "flag", RawType: RawTypeImage}, RawValue: "flags/fr.png"},
		},
	}
	pv := inst.ValueByName("flag")
	require.NotNil(t, pv)
	assert.Equal(t, "flags/fr.png", pv.RawValue)
	assert.Nil(t, inst.ValueByName("capital"))
}
