package models

// Redis keyspace shared by the processor (writer) and the terminal's live
// rate provider (reader).
const (
	quoteKeyPrefix = "quote:"
	indexKeyPrefix = "quotes:"
)

// QuoteKey is where the latest quote of symbol is stored.
func QuoteKey(class Class, symbol string) string {
	return quoteKeyPrefix + string(class) + ":" + symbol
}

// IndexKey is the set of symbols known for class.
func IndexKey(class Class) string { return indexKeyPrefix + string(class) }
