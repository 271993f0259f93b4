package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type editForm struct {
	ArrivalTime string `validate:"required,timeofday"`
	LeavingTime string `validate:"omitempty,timeofday"`
}

func TestValidateStructTimeOfDay(t *testing.T) {
	assert.Nil(t, ValidateStruct(editForm{ArrivalTime: "09:00 AM"}))
	assert.Nil(t, ValidateStruct(editForm{ArrivalTime: "09:00 AM", LeavingTime: "05:30 PM"}))

	errs := ValidateStruct(editForm{ArrivalTime: "17:30"})
	assert.Len(t, errs, 1)
	assert.Equal(t, "timeofday", errs[0].Tag)

	errs = ValidateStruct(editForm{})
	assert.Len(t, errs, 1)
	assert.Equal(t, "required", errs[0].Tag)
}

func TestValidateStructHasUppercase(t *testing.T) {
	type form struct {
		Password string `validate:"required,min=8,hasuppercase"`
	}

	assert.Nil(t, ValidateStruct(form{Password: "Password123"}))

	errs := ValidateStruct(form{Password: "password123"})
	assert.Len(t, errs, 1)
	assert.Equal(t, "hasuppercase", errs[0].Tag)
}
