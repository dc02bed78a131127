package web

import (
	"net/http"
	"net/url"
)

const flashCookieName = "flash"

// setFlash сохраняет сообщение до следующего показа страницы
func setFlash(w http.ResponseWriter, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    url.QueryEscape(message),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlash читает сообщение и сразу удаляет cookie
func popFlash(w http.ResponseWriter, r *http.Request) []string {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:   flashCookieName,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})

	message, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return nil
	}
	return []string{message}
}

func redirectWithFlash(w http.ResponseWriter, r *http.Request, to, message string) {
	setFlash(w, message)
	http.Redirect(w, r, to, http.StatusSeeOther)
}
