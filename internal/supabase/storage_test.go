package supabase_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"yasmin-alsham-backend/internal/supabase"
)

func TestOrderImagePath(t *testing.T) {
	p := supabase.OrderImagePath("order-1", "Dress.PNG")
	assert.True(t, strings.HasPrefix(p, "orders/order-1/"))
	assert.True(t, strings.HasSuffix(p, ".png"))

	assert.True(t, strings.HasSuffix(supabase.OrderImagePath("order-1", "blob"), ".jpg"))
	assert.NotEqual(t, supabase.OrderImagePath("o", "a.jpg"), supabase.OrderImagePath("o", "a.jpg"))
}

func TestStorageClient_PublicURL(t *testing.T) {
	s := supabase.NewStorageClient("https://project.supabase.co/", "key", "order-images")
	assert.Equal(t,
		"https://project.supabase.co/storage/v1/object/public/order-images/orders/o1/x.jpg",
		s.PublicURL("orders/o1/x.jpg"))
}
