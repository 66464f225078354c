package handler

import "net/http"

type redirect struct {
	to     string
	status int
}

func (rd redirect) Render(w http.ResponseWriter, r *http.Request) error {
	http.Redirect(w, r, rd.to, rd.status)
	return nil
}

// Redirect answers 303 See Other, the status browsers follow with a GET
// after a form POST.
func Redirect(to string) Response {
	return redirect{to: to, status: http.StatusSeeOther}
}

// RedirectWithCode uses status, which should be one of the 3xx redirects.
func RedirectWithCode(to string, status int) Response {
	return redirect{to: to, status: status}
}
