package validation

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	Username string `json:"username" binding:"required,username"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
	Repeat   string `json:"repeat" binding:"required,nefield=Password"`
}

func TestToDetails(t *testing.T) {
	Init()

	err := binding.Validator.ValidateStruct(signup{
		Username: "averyveryveryveryveryveryveryveryveryverylongusername",
		Email:    "nope",
		Password: "short",
		Repeat:   "short",
	})
	require.Error(t, err)

	assert.Equal(t, map[string]string{
		"username": "must be at most 50 characters long",
		"email":    "must be a valid email",
		"password": "must be between 8 and 100 characters long",
		"repeat":   "must not be equal to Password field",
	}, ToDetails(err))

	err = binding.Validator.ValidateStruct(signup{})
	require.Error(t, err)
	assert.Equal(t, "is required", ToDetails(err)["username"])
}

func TestToDetails_Payload(t *testing.T) {
	var v map[string]any
	err := json.Unmarshal([]byte("{"), &v)
	require.Error(t, err)
	assert.Equal(t, map[string]string{"payload": "invalid json"}, ToDetails(err))

	assert.Equal(t, map[string]string{"payload": "invalid payload"}, ToDetails(errors.New("eof")))
	assert.Nil(t, ToDetails(nil))
}
