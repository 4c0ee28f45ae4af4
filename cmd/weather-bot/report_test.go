package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-bot/internal/config"
	"github.com/i474232898/weather-bot/internal/weather"
)

const providerPayload = `{"current":{
  "temp_c":-12.0,"feelslike_c":-19.4,"wind_kph":18.0,"gust_kph":25.2,"cloud":75,
  "condition":{"text":"Переменная облачность"},"wind_dir":"WNW","wind_degree":290,
  "precip_mm":0.0,"vis_km":10.0,"pressure_mb":1021.0,"humidity":86}}`

func TestReportCommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Мыс Шмидта", r.URL.Query().Get("q"))
		_, _ = w.Write([]byte(providerPayload))
	}))
	defer srv.Close()

	t.Setenv("WEATHER_API", "key")
	t.Setenv("WEATHER_ENDPOINT", srv.URL)
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"report", "Мыс", "Шмидта"})
	require.NoError(t, cmd.Execute())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 1+len(weather.Fields))
	assert.Equal(t, "* * * * * * Мыс Шмидта * * * * * *", lines[0])
	assert.Equal(t, "Температура, С: -12.0", lines[1])
	assert.Equal(t, "Ветер, м/с: 5.0", lines[3])
	assert.Equal(t, "Порывы, м/с: 7.0", lines[4])
	assert.Equal(t, "Явления: Переменная облачность", lines[6])
	assert.Equal(t, "Направление ветра: ЗСЗ", lines[7])
}

func TestReportCommand_MissingKey(t *testing.T) {
	t.Setenv("WEATHER_API", "")

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"report", "Певек"})

	err := cmd.Execute()
	require.ErrorIs(t, err, config.ErrMissingCredential)
}

func TestServe_FailsFastWithoutCredentials(t *testing.T) {
	t.Setenv("WEATHER_API", "")
	t.Setenv("TELEGRAM_TOKEN", "")
	t.Setenv("TELEGRAM_CHAT_ID", "")

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"serve"})

	err := cmd.Execute()
	require.ErrorIs(t, err, config.ErrMissingCredential)
}
