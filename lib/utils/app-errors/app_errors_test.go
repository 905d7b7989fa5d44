package apperrors

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatus(t *testing.T) {
	t.Run(`typed errors`, func(t *testing.T) {
		require.Equal(t, http.StatusNotFound, HTTPStatus(NotFound("нет")))
		require.Equal(t, http.StatusBadRequest, HTTPStatus(Validation("нет")))
		require.Equal(t, http.StatusConflict, HTTPStatus(Conflict("нет")))
		require.Equal(t, http.StatusForbidden, HTTPStatus(Forbidden("нет")))
		require.Equal(t, http.StatusUnauthorized, HTTPStatus(Unauthorized("нет")))
	})
	t.Run(`wrapped typed error keeps kind`, func(t *testing.T) {
		err := errors.Wrap(Conflict("уже есть"), "создание")
		require.True(t, Is(err, KindConflict))
		require.Equal(t, http.StatusConflict, HTTPStatus(err))
	})
	t.Run(`plain error is internal`, func(t *testing.T) {
		require.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("db down")))
		require.False(t, Is(nil, KindInternal))
	})
	t.Run(`field errors`, func(t *testing.T) {
		err := ValidationFields(map[string]string{"email": "обязательное поле"})
		require.Equal(t, "обязательное поле", FieldErrors(err)["email"])
		require.Nil(t, FieldErrors(NotFound("нет")))
	})
}
