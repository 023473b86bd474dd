package handler

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/atinyakov/shortlink-registry/internal/app/service"
	"github.com/atinyakov/shortlink-registry/internal/storage"
)

type RedirectHandler struct {
	resolver   service.ResolverIface
	rootDomain string
	logger     *zap.Logger
}

// NewRedirect returns the redirect handler. rootDomain is the bare domain
// subdomains hang off; when empty every host is the root namespace.
func NewRedirect(r service.ResolverIface, rootDomain string, l *zap.Logger) *RedirectHandler {
	return &RedirectHandler{
		resolver:   r,
		rootDomain: strings.ToLower(strings.TrimSpace(rootDomain)),
		logger:     l,
	}
}

// NamespaceFromHost maps a Host header to a namespace: "<label>.<root>"
// yields label, anything else the root namespace. ok is false for hosts
// nested deeper than one label.
func NamespaceFromHost(host, rootDomain string) (namespace string, ok bool) {
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.TrimSuffix(strings.ToLower(host), ".")

	if rootDomain == "" || host == rootDomain {
		return storage.RootNamespace, true
	}

	label, found := strings.CutSuffix(host, "."+rootDomain)
	if !found {
		return storage.RootNamespace, true
	}
	if label == "" || strings.Contains(label, ".") {
		return "", false
	}
	return label, true
}

// ByHost handles GET /{code}, taking the namespace from the Host header.
func (h *RedirectHandler) ByHost(res http.ResponseWriter, req *http.Request) {
	namespace, ok := NamespaceFromHost(req.Host, h.rootDomain)
	if !ok {
		http.Error(res, "URL not found", http.StatusNotFound)
		return
	}
	h.redirect(res, req, namespace, chi.URLParam(req, "code"))
}

// ByPath handles GET /s/{subdomain}/{code} for hosts without wildcard DNS.
func (h *RedirectHandler) ByPath(res http.ResponseWriter, req *http.Request) {
	h.redirect(res, req, service.NormalizeLabel(chi.URLParam(req, "subdomain")), chi.URLParam(req, "code"))
}

func (h *RedirectHandler) redirect(res http.ResponseWriter, req *http.Request, namespace, code string) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	target, err := h.resolver.Resolve(ctx, namespace, code, service.Visit{
		IP:        clientIP(req),
		UserAgent: req.UserAgent(),
	})
	if errors.Is(err, service.ErrNotFound) {
		http.Error(res, "URL not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.Error("cannot resolve link", zap.String("namespace", namespace), zap.String("short_code", code), zap.Error(err))
		http.Error(res, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	res.Header().Set("Location", target)
	res.WriteHeader(http.StatusTemporaryRedirect)
}

func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
