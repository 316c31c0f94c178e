package schema_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hr-admin/internal/schema"
)

func employeeDescriptor() schema.Descriptor {
	return schema.Descriptor{
		Entity: "employee",
		Fields: []schema.Field{
			{Name: "first_name", Type: schema.TypeString, Required: true},
			{Name: "last_name", Type: schema.TypeString, Required: true},
			{Name: "vacation_days", Type: schema.TypeInt, Required: true},
			{Name: "user_id", Type: schema.TypeRef, Nullable: true},
		},
	}
}

func reasonsByField(verr *schema.ValidationError) map[string]string {
	out := map[string]string{}
	for _, f := range verr.Fields {
		out[f.Field] = f.Reason
	}
	return out
}

func TestValidateCreate(t *testing.T) {
	desc := employeeDescriptor()

	t.Run("success - all required fields present", func(t *testing.T) {
		verr := desc.ValidateCreate(schema.Payload{
			"first_name":    "Ana",
			"last_name":     "Silva",
			"vacation_days": float64(20),
		})
		assert.Nil(t, verr)
	})

	t.Run("success - nullable ref accepts null and absence", func(t *testing.T) {
		verr := desc.ValidateCreate(schema.Payload{
			"first_name":    "Ana",
			"last_name":     "Silva",
			"vacation_days": float64(20),
			"user_id":       nil,
		})
		assert.Nil(t, verr)
	})

	t.Run("negative - absent required field reports required", func(t *testing.T) {
		verr := desc.ValidateCreate(schema.Payload{
			"first_name":    "Ana",
			"vacation_days": float64(20),
		})
		require.NotNil(t, verr)
		assert.Equal(t, schema.ReasonRequired, reasonsByField(verr)["last_name"])
	})

	t.Run("negative - wrong types are collected per field", func(t *testing.T) {
		verr := desc.ValidateCreate(schema.Payload{
			"first_name":    float64(7),
			"last_name":     "Silva",
			"vacation_days": "twenty",
		})
		require.NotNil(t, verr)
		reasons := reasonsByField(verr)
		assert.Equal(t, schema.ReasonInvalidType, reasons["first_name"])
		assert.Equal(t, schema.ReasonInvalidType, reasons["vacation_days"])
	})

	t.Run("negative - fractional number fails the int check", func(t *testing.T) {
		verr := desc.ValidateCreate(schema.Payload{
			"first_name":    "Ana",
			"last_name":     "Silva",
			"vacation_days": 12.5,
		})
		require.NotNil(t, verr)
		assert.Equal(t, schema.ReasonInvalidType, reasonsByField(verr)["vacation_days"])
	})

	t.Run("negative - malformed uuid in ref field", func(t *testing.T) {
		verr := desc.ValidateCreate(schema.Payload{
			"first_name":    "Ana",
			"last_name":     "Silva",
			"vacation_days": float64(20),
			"user_id":       "not-a-uuid",
		})
		require.NotNil(t, verr)
		assert.Equal(t, schema.ReasonInvalidFormat, reasonsByField(verr)["user_id"])
	})
}

func TestValidateUpdate(t *testing.T) {
	desc := employeeDescriptor()

	t.Run("success - absent fields are left alone", func(t *testing.T) {
		verr := desc.ValidateUpdate(schema.Payload{"first_name": "Bo"})
		assert.Nil(t, verr)
	})

	t.Run("success - explicit null on a nullable field", func(t *testing.T) {
		verr := desc.ValidateUpdate(schema.Payload{"user_id": nil})
		assert.Nil(t, verr)
	})

	t.Run("negative - explicit null on a required field", func(t *testing.T) {
		verr := desc.ValidateUpdate(schema.Payload{"first_name": nil})
		require.NotNil(t, verr)
		assert.Equal(t, schema.ReasonRequired, reasonsByField(verr)["first_name"])
	})

	t.Run("negative - wrong type on a supplied field", func(t *testing.T) {
		verr := desc.ValidateUpdate(schema.Payload{"vacation_days": "many"})
		require.NotNil(t, verr)
		assert.Equal(t, schema.ReasonInvalidType, reasonsByField(verr)["vacation_days"])
	})
}

func TestClean(t *testing.T) {
	cleaned := schema.Clean(schema.Payload{
		"id":         "x",
		"created_at": "y",
		"updated_at": "z",
		"first_name": "Ana",
	})

	assert.Equal(t, schema.Payload{"first_name": "Ana"}, cleaned)
}

func TestParseDate(t *testing.T) {
	t.Run("plain date", func(t *testing.T) {
		ts, ok := schema.ParseDate("2026-03-10")
		require.True(t, ok)
		assert.Equal(t, 2026, ts.Year())
	})

	t.Run("rfc3339 timestamp", func(t *testing.T) {
		_, ok := schema.ParseDate("2026-03-10T08:00:00Z")
		assert.True(t, ok)
	})

	t.Run("garbage", func(t *testing.T) {
		_, ok := schema.ParseDate("10/03/2026")
		assert.False(t, ok)
	})
}

func TestDecode(t *testing.T) {
	type target struct {
		FirstName string  `json:"first_name"`
		UserID    *string `json:"user_id"`
	}

	id := uuid.New().String()
	var dest target
	err := schema.Decode(schema.Payload{"first_name": "Ana", "user_id": id}, &dest)
	require.NoError(t, err)
	assert.Equal(t, "Ana", dest.FirstName)
	require.NotNil(t, dest.UserID)
	assert.Equal(t, id, *dest.UserID)
}

func TestRegistry(t *testing.T) {
	reg := schema.NewRegistry(employeeDescriptor())

	d, ok := reg.Get("employee")
	require.True(t, ok)
	assert.Equal(t, "employee", d.Entity)

	_, ok = reg.Get("company")
	assert.False(t, ok)
}
