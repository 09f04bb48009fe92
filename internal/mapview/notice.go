package mapview

// NoticeKind - информационное сообщение или ошибка
type NoticeKind string

const (
	NoticeInfo  NoticeKind = "info"
	NoticeError NoticeKind = "error"
)

// Коды сообщений пользователю
const (
	CodeQueryFailed         = "QUERY_FAILED"
	CodeEmptyResult         = "EMPTY_RESULT"
	CodeGeoPermissionDenied = "GEO_PERMISSION_DENIED"
	CodeGeoUnavailable      = "GEO_UNAVAILABLE"
	CodeGeoTimeout          = "GEO_TIMEOUT"
)

// Notice - неблокирующее сообщение пользователю
type Notice struct {
	Kind    NoticeKind
	Code    string
	Message string
}

// Notifier получает сообщения карты. Вызывается из цикла карты.
type Notifier interface {
	Notify(n Notice)
}

// NotifierFunc - функция как Notifier
type NotifierFunc func(n Notice)

func (f NotifierFunc) Notify(n Notice) { f(n) }

type nopNotifier struct{}

func (nopNotifier) Notify(Notice) {}

var (
	noticeQueryFailed = Notice{
		Kind:    NoticeError,
		Code:    CodeQueryFailed,
		Message: "Could not load map data. Showing the last loaded results.",
	}
	noticeEmptyRegion = Notice{
		Kind:    NoticeInfo,
		Code:    CodeEmptyResult,
		Message: "There are no places to show in this region yet.",
	}
	noticeEmptyNearby = Notice{
		Kind:    NoticeInfo,
		Code:    CodeEmptyResult,
		Message: "There are no places within this distance. Try a larger radius.",
	}
	noticeEmptyRegions = Notice{
		Kind:    NoticeInfo,
		Code:    CodeEmptyResult,
		Message: "There are no regions with published places yet.",
	}
	noticeGeoDenied = Notice{
		Kind:    NoticeError,
		Code:    CodeGeoPermissionDenied,
		Message: "Location access was denied. Allow it in your browser settings and press \"Locate me\".",
	}
	noticeGeoUnavailable = Notice{
		Kind:    NoticeError,
		Code:    CodeGeoUnavailable,
		Message: "Your position is currently unavailable.",
	}
	noticeGeoTimeout = Notice{
		Kind:    NoticeError,
		Code:    CodeGeoTimeout,
		Message: "Locating you took too long. Please try again.",
	}
)
