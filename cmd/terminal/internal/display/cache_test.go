package display_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shubham-shewale/fx-terminal/cmd/terminal/internal/crossrate"
	"github.com/shubham-shewale/fx-terminal/cmd/terminal/internal/display"
	"github.com/shubham-shewale/fx-terminal/pkg/models"
)

func newCache() *display.Cache {
	return display.NewCache(display.NewFormatter(display.DefaultOverrides))
}

func usdJPY(bid, ask, high, low float64) models.Quote {
	return models.Quote{Symbol: "USD_JPY", Class: models.ClassFX, Bid: bid, Ask: ask, High: models.Float(high), Low: models.Float(low)}
}

func TestCache_FirstApplyEmitsEveryField(t *testing.T) {
	c := newCache()

	out := c.Apply([]models.Quote{usdJPY(150, 150.003, 150.2, 149.8)})

	require.Equal(t, []models.Update{
		{Symbol: "USD_JPY", Field: models.FieldBid, Text: "150.000"},
		{Symbol: "USD_JPY", Field: models.FieldAsk, Text: "150.003"},
		{Symbol: "USD_JPY", Field: models.FieldHigh, Text: "150.200"},
		{Symbol: "USD_JPY", Field: models.FieldLow, Text: "149.800"},
	}, out)
}

func TestCache_IdenticalTextSuppressed(t *testing.T) {
	c := newCache()
	c.Apply([]models.Quote{usdJPY(150, 150.003, 150.2, 149.8)})

	// differs below the displayed precision: formatted text is unchanged
	out := c.Apply([]models.Quote{usdJPY(150.0001, 150.0031, 150.2, 149.8)})

	require.Empty(t, out)
}

func TestCache_SingleChangedField(t *testing.T) {
	c := newCache()
	c.Apply([]models.Quote{usdJPY(150, 150.003, 150.2, 149.8)})

	out := c.Apply([]models.Quote{usdJPY(150, 150.004, 150.2, 149.8)})

	require.Equal(t, []models.Update{{Symbol: "USD_JPY", Field: models.FieldAsk, Text: "150.004"}}, out)
	text, ok := c.Text("USD_JPY", models.FieldAsk)
	require.True(t, ok)
	require.Equal(t, "150.004", text)
}

func TestCache_AbsentFieldsKeepLastKnownText(t *testing.T) {
	c := newCache()
	c.Apply([]models.Quote{usdJPY(150, 150.003, 150.2, 149.8)})

	out := c.Apply([]models.Quote{{Symbol: "USD_JPY", Class: models.ClassFX, Bid: 150.1, Ask: 150.103}})

	require.Len(t, out, 2)
	for _, u := range out {
		require.NotEqual(t, models.FieldHigh, u.Field)
		require.NotEqual(t, models.FieldLow, u.Field)
	}
	high, ok := c.Text("USD_JPY", models.FieldHigh)
	require.True(t, ok)
	require.Equal(t, "150.200", high)
}

func TestCache_MalformedQuoteSkippedOthersUnaffected(t *testing.T) {
	c := newCache()

	out := c.Apply([]models.Quote{
		{Symbol: "EUR_JPY", Class: models.ClassFX, Bid: math.NaN(), Ask: 162.5},
		{Symbol: "GBP_JPY", Class: models.ClassFX, Bid: 190.2, Ask: math.Inf(1)},
		{Symbol: "BTC_JPY", Class: models.ClassCrypto, Bid: 14000000, Ask: 14000100},
	})

	require.Equal(t, []models.Update{
		{Symbol: "BTC_JPY", Field: models.FieldBid, Text: "14,000,000"},
		{Symbol: "BTC_JPY", Field: models.FieldAsk, Text: "14,000,100"},
	}, out)
}

func TestCache_EndToEndDerivedPair(t *testing.T) {
	fx := []models.Quote{{Symbol: "USD_JPY", Class: models.ClassFX, Bid: 150.000, Ask: 150.003}}
	crypto := []models.Quote{{Symbol: "BTC_JPY", Class: models.ClassCrypto, Bid: 14000000, Ask: 14000100}}
	derived := crossrate.Derive(fx, crypto, crossrate.DefaultPairs)

	c := newCache()
	out := c.Apply(derived)

	// 14000000/150.003 = 93331.4667, 14000100/150 = 93334.0
	require.Equal(t, []models.Update{
		{Symbol: "BTC_USD", Field: models.FieldBid, Text: "93,331.47"},
		{Symbol: "BTC_USD", Field: models.FieldAsk, Text: "93,334.00"},
	}, out)
}

func TestCache_Snapshot(t *testing.T) {
	c := newCache()
	c.Apply([]models.Quote{
		usdJPY(150, 150.003, 150.2, 149.8),
		{Symbol: "BTC_USD", Class: models.ClassDerived, Bid: 93331.4667, Ask: 93334},
	})

	snap := c.Snapshot([]string{"BTC_USD", "NOPE"})

	require.Equal(t, []models.Update{
		{Symbol: "BTC_USD", Field: models.FieldBid, Text: "93,331.47"},
		{Symbol: "BTC_USD", Field: models.FieldAsk, Text: "93,334.00"},
	}, snap)
}

func TestFormatter_Precision(t *testing.T) {
	f := display.NewFormatter(display.DefaultOverrides)

	cases := []struct {
		q    models.Quote
		v    float64
		want string
	}{
		{models.Quote{Symbol: "BTC_JPY", Class: models.ClassCrypto}, 14000100.4, "14,000,100"},
		{models.Quote{Symbol: "USD_JPY", Class: models.ClassFX}, 150.0031, "150.003"},
		{models.Quote{Symbol: "EUR_USD", Class: models.ClassFX}, 1.08512, "1.085"},
		{models.Quote{Symbol: "XAU_JPY", Class: models.ClassDerived}, 412345.6781, "412,345.678"},
		{models.Quote{Symbol: "BTC_USD", Class: models.ClassDerived}, 93334, "93,334.00"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, f.Format(tc.q, tc.v), tc.q.Symbol)
	}
}
