package hexun

import (
	"fmt"

	"quotewatch/internal/security"
)

const (
	// defaultBaseHost is the shared suffix of every quote endpoint host.
	defaultBaseHost = "hermes.hexun.com"
	// columnList is the fixed set of columns requested from the provider.
	// Only the first seven values of the response are consumed.
	columnList = "Price,Open,High,Low,UpDown,UpDownRate,PE2,ExchangeRatio"
	// callbackName is the JSONP callback tag the provider wraps payloads in.
	callbackName = "c"
)

// codeString prefixes the market-local code with the provider's market tag.
func codeString(id security.Identifier) string {
	switch id.Market {
	case security.Shanghai:
		return "sse" + id.Code
	case security.Shenzhen:
		return "szse" + id.Code
	case security.HongKong:
		return "HKEX" + id.Code
	case security.Nasdaq:
		return "NASDAQ" + id.Code
	}
	return id.Code
}

// region selects the provider's region path segment.
func region(id security.Identifier) string {
	switch id.Market {
	case security.Shanghai, security.Shenzhen:
		return "a"
	case security.HongKong:
		return "hk"
	case security.Nasdaq:
		return "usa"
	}
	return ""
}

// hostPrefix selects the provider's per-market host prefix.
func hostPrefix(id security.Identifier) string {
	switch id.Market {
	case security.Shanghai, security.Shenzhen:
		return "webstock.quote"
	case security.HongKong:
		return "webhkstock.quote"
	case security.Nasdaq:
		return "webusstock"
	}
	return ""
}

// BuildURL composes the quote request URL for one security. Query parameter
// order is part of the provider's expected format, so the URL is assembled
// with fmt rather than url.Values.
func BuildURL(id security.Identifier) string {
	return buildURL(defaultBaseHost, id)
}

func buildURL(baseHost string, id security.Identifier) string {
	return fmt.Sprintf("http://%s.%s/%s/quotelist?code=%s&column=%s&callback=%s",
		hostPrefix(id), baseHost, region(id), codeString(id), columnList, callbackName)
}
