// internal/domain/translation/dictionary.go
package translation

// english is the base-language dictionary. A key missing here degrades
// to displaying the key itself.
var english = map[string]string{
	"app.title":            "AgriMart",
	"home.welcome":         "Welcome to AgriMart",
	"home.groceries":       "Groceries",
	"home.agri_inputs":     "Farm Inputs",
	"home.weather":         "Today's Weather",
	"cart.title":           "My Cart",
	"cart.empty":           "Your cart is empty",
	"cart.add":             "Add to Cart",
	"cart.remove":          "Remove",
	"cart.total":           "Total",
	"cart.checkout":        "Checkout",
	"orders.title":         "My Orders",
	"orders.none":          "No orders yet",
	"orders.status":        "Status",
	"orders.placed_on":     "Placed on",
	"status.pending":       "Pending",
	"status.confirmed":     "Confirmed",
	"status.processing":    "Processing",
	"status.shipped":       "Shipped",
	"status.delivered":     "Delivered",
	"status.cancelled":     "Cancelled",
	"admin.inventory":      "Inventory",
	"admin.categories":     "Categories",
	"admin.update_status":  "Update Status",
	"profile.title":        "My Profile",
	"profile.logout":       "Log Out",
	"common.retry":         "Retry",
	"common.cancel":        "Cancel",
	"common.save":          "Save",
	"common.loading":       "Loading...",
	"error.network":        "Could not reach the server. Your changes are saved on this device.",
	"error.login_required": "Please log in to continue",
}

// kannada is the static Kannada dictionary. Coverage is partial by
// design; keys missing here go through the runtime translation cache.
var kannada = map[string]string{
	"app.title":         "ಅಗ್ರಿಮಾರ್ಟ್",
	"home.welcome":      "ಅಗ್ರಿಮಾರ್ಟ್‌ಗೆ ಸುಸ್ವಾಗತ",
	"home.groceries":    "ದಿನಸಿ",
	"home.agri_inputs":  "ಕೃಷಿ ಪರಿಕರಗಳು",
	"home.weather":      "ಇಂದಿನ ಹವಾಮಾನ",
	"cart.title":        "ನನ್ನ ಕಾರ್ಟ್",
	"cart.empty":        "ನಿಮ್ಮ ಕಾರ್ಟ್ ಖಾಲಿಯಾಗಿದೆ",
	"cart.add":          "ಕಾರ್ಟ್‌ಗೆ ಸೇರಿಸಿ",
	"cart.remove":       "ತೆಗೆದುಹಾಕಿ",
	"cart.total":        "ಒಟ್ಟು",
	"orders.title":      "ನನ್ನ ಆರ್ಡರ್‌ಗಳು",
	"status.pending":    "ಬಾಕಿ ಇದೆ",
	"status.delivered":  "ತಲುಪಿಸಲಾಗಿದೆ",
	"status.cancelled":  "ರದ್ದುಗೊಳಿಸಲಾಗಿದೆ",
	"profile.title":     "ನನ್ನ ಪ್ರೊಫೈಲ್",
	"profile.logout":    "ಲಾಗ್ ಔಟ್",
	"common.save":       "ಉಳಿಸಿ",
	"common.cancel":     "ರದ್ದುಮಾಡಿ",
}

// staticTranslation returns the static dictionary entry for key in the
// given language, if one exists.
func staticTranslation(lang, key string) (string, bool) {
	switch lang {
	case LangKannada:
		text, ok := kannada[key]
		return text, ok
	default:
		text, ok := english[key]
		return text, ok
	}
}

// baseText returns the base-language text for key, or the key itself
// when no entry exists.
func baseText(key string) string {
	if text, ok := english[key]; ok {
		return text
	}
	return key
}
