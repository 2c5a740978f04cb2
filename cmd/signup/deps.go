package main

import (
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-signup/internal/config"
	"github.com/goliatone/go-signup/pkg/render"
	"github.com/goliatone/go-signup/pkg/renderers/html"
	"github.com/goliatone/go-signup/pkg/sink"
	"github.com/goliatone/go-signup/pkg/validation"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// buildSink fans submissions out to every target enabled in cfg. The
// endpoint, the only target that can reject a submission, comes first; the
// log and file record a submission only once it accepted it. The returned
// closer releases the output file, if any.
func buildSink(cfg config.SinkConfig, logger logrus.FieldLogger) (sink.Sink, io.Closer, error) {
	var (
		targets sink.Multi
		closer  io.Closer = nopCloser{}
	)

	if cfg.Endpoint != "" {
		options := []sink.HTTPOption{
			sink.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		}
		for key, value := range cfg.Headers {
			options = append(options, sink.WithHeader(key, value))
		}
		endpoint, err := sink.NewHTTP(cfg.Endpoint, options...)
		if err != nil {
			return nil, nil, err
		}
		targets = append(targets, endpoint)
	}

	if cfg.Log {
		targets = append(targets, sink.NewLog(logger))
	}

	if cfg.File != "" {
		format, err := sink.ParseFormat(cfg.Format)
		if err != nil {
			return nil, nil, err
		}
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("open sink file: %w", err)
		}
		targets = append(targets, sink.NewWriter(f, sink.WithFormat(format)))
		closer = f
	}

	if len(targets) == 0 {
		return sink.Discard{}, closer, nil
	}
	return targets, closer, nil
}

// loadTranslator returns the message catalog named by cfg, or nil when none
// is configured.
func loadTranslator(cfg config.RenderConfig) (render.Translator, error) {
	if cfg.CatalogFile == "" {
		return nil, nil
	}
	catalog, err := render.LoadCatalogFile(cfg.CatalogFile)
	if err != nil {
		return nil, err
	}
	return catalog, nil
}

func newValidator(translator render.Translator, locale string) *validation.Validator {
	if translator == nil {
		return validation.New()
	}
	return validation.New(validation.WithTranslator(translator, locale))
}

func newHTMLRenderer(cfg config.RenderConfig, translator render.Translator) (*html.Renderer, error) {
	options := []html.Option{
		html.WithCompany(cfg.Company),
		html.WithTranslator(translator),
	}
	if cfg.Terms != "" {
		options = append(options, html.WithTerms(cfg.Terms))
	}
	if cfg.TemplatesDir != "" {
		options = append(options, html.WithTemplatesDir(cfg.TemplatesDir))
	}
	return html.New(options...)
}
