package session

// Messages shown in the output pane. The load-failure text is the fixed
// prefix with the failure detail appended on the next line.
const (
	StatusLoading   = "Loading uasat library..."
	StatusLoaded    = "The uasat library is loaded."
	StatusWorking   = "Working..."
	StatusCanceled  = "Canceled."
	MsgNotLoaded    = "The uasat library is not loaded."
	LoadErrorPrefix = "Could not load uasat library."
)

// RenderLoadError formats a load failure: fixed prefix, then the detail.
func RenderLoadError(detail string) string {
	return LoadErrorPrefix + "\n" + detail
}
