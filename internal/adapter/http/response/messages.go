package response

import (
	"github.com/labstack/echo/v4"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Supported lists the response languages; the first one is the fallback.
var Supported = []language.Tag{language.English, language.Arabic}

var matcher = language.NewMatcher(Supported)

// translations holds the non-English texts, keyed by the English message.
var translations = map[language.Tag]map[string]string{
	language.Arabic: {
		MsgInvalidRequestBody: "تعذر قراءة نص الطلب",
		MsgValidationFailed:   "فشل التحقق من صحة الطلب",
		MsgServiceUnavailable: "البحث عن الرحلات غير متاح مؤقتاً",
		MsgRateLimited:        "طلبات كثيرة جداً، يرجى الإبطاء",
		MsgNotFound:           "المورد المطلوب غير موجود",
		MsgInternalError:      "حدث خطأ غير متوقع",
		MsgStoreUnreachable:   "تعذر الوصول إلى مخزن الرحلات",
	},
}

var messages = newCatalog()

func newCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, texts := range translations {
		for key, text := range texts {
			if err := b.SetString(tag, key, text); err != nil {
				panic(err)
			}
		}
	}
	return b
}

// Negotiate picks the best supported language for an Accept-Language header.
func Negotiate(acceptLanguage string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return Supported[0]
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return Supported[0]
	}
	return Supported[index]
}

// Translate returns msg in the given language, or msg itself when no
// translation exists.
func Translate(tag language.Tag, msg string) string {
	return message.NewPrinter(tag, message.Catalog(messages)).Sprintf(msg)
}

// Localize translates msg for the language the request asked for.
func Localize(c echo.Context, msg string) string {
	return Translate(Negotiate(c.Request().Header.Get("Accept-Language")), msg)
}
