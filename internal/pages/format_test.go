package pages

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T { return &v }

func TestFormatPrice(t *testing.T) {
	got := FormatPrice(ptr(19.9))
	assert.Contains(t, got, "19,90")
	assert.Contains(t, got, "R$")

	assert.Equal(t, "R$ 1.234,50", FormatPrice(ptr(1234.5)))
	assert.Equal(t, "R$ 0,00", FormatPrice(ptr(0.0)))
	assert.Equal(t, "Preço indisponível", FormatPrice(nil))
}

func TestFormatPrice_PlainSpaceAndSign(t *testing.T) {
	assert.Equal(t, "R$ 19,90", FormatPrice(ptr(19.9)))
	assert.NotContains(t, FormatPrice(ptr(19.9)), "\u00a0")
	assert.Equal(t, "-R$ 3,00", FormatPrice(ptr(-3.0)))
	assert.Equal(t, "-R$ 1.234,50", FormatPrice(ptr(-1234.5)))
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		name string
		in   *string
		want string
	}{
		{"nil", nil, "Data não informada"},
		{"empty", ptr(""), "Data não informada"},
		{"local datetime", ptr("2024-03-05T10:30:00"), "05 de março de 2024"},
		{"fractional seconds", ptr("2023-12-25T08:00:00.123456"), "25 de dezembro de 2023"},
		{"rfc3339", ptr("2024-01-15T10:30:00Z"), "15 de janeiro de 2024"},
		{"date only", ptr("2022-07-09"), "09 de julho de 2022"},
		{"garbage", ptr("ontem"), "ontem"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDate(tt.in))
		})
	}
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "Olá mundo !", Excerpt("<p>Olá   <b>mundo</b>\n!</p>", ExcerptLength))

	long := strings.Repeat("á", 250)
	got := Excerpt(long, ExcerptLength)
	assert.True(t, strings.HasSuffix(got, "…"))
	assert.Equal(t, 201, len([]rune(got)))

	exact := strings.Repeat("a", ExcerptLength)
	assert.Equal(t, exact, Excerpt(exact, ExcerptLength))
}

func TestStripHTML_TagsBecomeSpaces(t *testing.T) {
	assert.Equal(t, "a b", StripHTML("a<br>b"))
	assert.Equal(t, " Olá  mundo ", StripHTML(`<p class="x">Olá</p><p>mundo</p>`))
	assert.Equal(t, "Olá mundo", Excerpt(`<p class="x">Olá</p><p>mundo</p>`, ExcerptLength))
}
