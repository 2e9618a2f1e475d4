// Package embed generates the scripts an integrator pastes into a host page
// and the full widget script those pages load.
//
// All output is plain text. Nothing here executes JavaScript; the generator
// only guarantees that every interpolated value stays inside its string
// literal and cannot close the surrounding <script> element.
package embed

import (
	"fmt"
	"html/template"
	"net/url"
	"regexp"
	"strings"

	"dario.cat/mergo"
	"github.com/liliang-cn/conversa/internal/domain"
)

const (
	DefaultGlobalName  = "ConversaAI"
	DefaultContainerID = "conversa-ai-container"

	maxWidgetIDLen = 128
)

var (
	widgetIDPattern  = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
	jsIdentPattern   = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)
	elementIDPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)
)

// Options configures a Generator
type Options struct {
	// BaseURL is the origin serving /widget/<id>.js and the widget API
	BaseURL string
	// GlobalName is the window property the full widget script defines
	GlobalName string
	// ContainerID is the id of the element the loader creates
	ContainerID string
}

// Generator produces embed scripts. It is immutable and safe for concurrent use.
type Generator struct {
	baseURL     string
	globalName  string
	containerID string
}

// NewGenerator validates opts and returns a Generator
func NewGenerator(opts Options) (*Generator, error) {
	if err := mergo.Merge(&opts, Options{
		GlobalName:  DefaultGlobalName,
		ContainerID: DefaultContainerID,
	}); err != nil {
		return nil, fmt.Errorf("embed: apply default options: %w", err)
	}

	u, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("embed: parse base url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("embed: base url %q must be an absolute http(s) url", opts.BaseURL)
	}
	if !jsIdentPattern.MatchString(opts.GlobalName) {
		return nil, fmt.Errorf("embed: global name %q is not a JavaScript identifier", opts.GlobalName)
	}
	if !elementIDPattern.MatchString(opts.ContainerID) {
		return nil, fmt.Errorf("embed: container id %q is not a valid element id", opts.ContainerID)
	}

	return &Generator{
		baseURL:     strings.TrimRight(u.String(), "/"),
		globalName:  opts.GlobalName,
		containerID: opts.ContainerID,
	}, nil
}

// ValidateWidgetID reports whether id can be embedded in generated code
func ValidateWidgetID(id string) error {
	switch {
	case id == "":
		return &domain.InvalidIdentifierError{ID: id, Reason: "empty"}
	case len(id) > maxWidgetIDLen:
		return &domain.InvalidIdentifierError{ID: id, Reason: fmt.Sprintf("longer than %d characters", maxWidgetIDLen)}
	case !widgetIDPattern.MatchString(id):
		return &domain.InvalidIdentifierError{ID: id, Reason: "only letters, digits and underscore are allowed"}
	}
	return nil
}

// ScriptURL returns the address of the full widget script for widgetID
func (g *Generator) ScriptURL(widgetID string) string {
	return g.baseURL + "/widget/" + widgetID + ".js"
}

const loaderTemplate = `(function() {
  var container = document.createElement('div');
  container.id = '%s';
  document.body.appendChild(container);

  var script = document.createElement('script');
  script.src = '%s';
  script.async = true;
  script.onload = function() {
    if (typeof %s !== 'undefined') {
      %s.init({
        widgetId: '%s'
      });
    }
  };
  document.head.appendChild(script);
})();`

// GenerateEmbedScript returns the bootstrap script for widgetID. The output
// depends only on widgetID and the generator options.
func (g *Generator) GenerateEmbedScript(widgetID string) (string, error) {
	if err := ValidateWidgetID(widgetID); err != nil {
		return "", err
	}

	return fmt.Sprintf(loaderTemplate,
		template.JSEscapeString(g.containerID),
		template.JSEscapeString(g.ScriptURL(widgetID)),
		g.globalName,
		g.globalName,
		template.JSEscapeString(widgetID),
	), nil
}

// EmbedCodeSnippet wraps the bootstrap script in a single <script> element
func (g *Generator) EmbedCodeSnippet(widgetID string) (string, error) {
	script, err := g.GenerateEmbedScript(widgetID)
	if err != nil {
		return "", err
	}
	return "<script>\n" + script + "\n</script>", nil
}
