package bot

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type botAPICall struct {
	Method string
	Form   map[string]string
}

// newFakeBotAPI serves the subset of the Bot API used by TelegramSender.
func newFakeBotAPI(t *testing.T) (*tgbotapi.BotAPI, func() []botAPICall) {
	t.Helper()
	var (
		mu    sync.Mutex
		calls []botAPICall
	)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		method := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]

		form := make(map[string]string, len(r.PostForm))
		for k := range r.PostForm {
			form[k] = r.PostForm.Get(k)
		}
		mu.Lock()
		calls = append(calls, botAPICall{Method: method, Form: form})
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		switch method {
		case "getMe":
			_, _ = w.Write([]byte(`{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"Погода","username":"weather_bot"}}`))
		case "sendMessage":
			_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":10,"date":0,"chat":{"id":42,"type":"private"}}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"ok":false,"error_code":404,"description":"Not Found"}`))
		}
	}))
	t.Cleanup(srv.Close)

	api, err := tgbotapi.NewBotAPIWithAPIEndpoint("123:abc", srv.URL+"/bot%s/%s")
	require.NoError(t, err)

	return api, func() []botAPICall {
		mu.Lock()
		defer mu.Unlock()
		return append([]botAPICall(nil), calls...)
	}
}

func TestTelegramSender_SendText(t *testing.T) {
	api, calls := newFakeBotAPI(t)
	sender := NewTelegramSender(api)

	require.NoError(t, sender.SendText(42, "Температура, С: 5"))

	got := calls()
	require.Len(t, got, 2)
	assert.Equal(t, "sendMessage", got[1].Method)
	assert.Equal(t, "42", got[1].Form["chat_id"])
	assert.Equal(t, "Температура, С: 5", got[1].Form["text"])
	assert.Empty(t, got[1].Form["reply_markup"])
}

func TestTelegramSender_SendKeyboard(t *testing.T) {
	api, calls := newFakeBotAPI(t)
	sender := NewTelegramSender(api)

	require.NoError(t, sender.SendKeyboard(42, "Привет", Keyboard))

	got := calls()
	require.Len(t, got, 2)
	markup := got[1].Form["reply_markup"]
	assert.Contains(t, markup, `"keyboard"`)
	for _, row := range Keyboard {
		for _, label := range row {
			assert.Contains(t, markup, label)
		}
	}
}
