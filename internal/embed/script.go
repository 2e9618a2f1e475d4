package embed

import (
	"encoding/json"
	"html/template"
	"strings"
	"unicode/utf8"

	"github.com/liliang-cn/conversa/internal/domain"
)

// widgetRuntime is the body of /widget/<id>.js. Placeholders are replaced
// with escaped values; every config text reaches the DOM via textContent.
const widgetRuntime = `window.__GLOBAL__ = (function() {
  var config = __CONFIG__;
  var apiBase = '__API_BASE__';
  var containerId = '__CONTAINER__';
  var radii = { rounded: '8px', square: '0', pill: '999px' };

  function init(options) {
    options = options || {};
    var settings = Object.assign({}, config, options);
    var root = document.getElementById(containerId);
    if (!root) {
      root = document.createElement('div');
      root.id = containerId;
      document.body.appendChild(root);
    }
    var ui = createWidgetElements(root, settings);
    setupEventListeners(ui, settings);
    if (settings.behavior && settings.behavior.autoOpen) {
      setTimeout(function() { toggle(ui, true); }, settings.behavior.autoOpenDelay || 0);
    }
    return ui;
  }

  function el(tag, text) {
    var node = document.createElement(tag);
    if (text) { node.textContent = text; }
    return node;
  }

  function createWidgetElements(root, settings) {
    var a = settings.appearance, theme = a.theme, radius = radii[theme.buttonStyle] || radii.rounded;
    var edges = a.position.split('-');
    root.style.position = 'fixed';
    root.style.zIndex = '9999';
    root.style[edges[0]] = '20px';
    root.style[edges[1]] = '20px';

    var button = el('button', a.title);
    button.style.background = theme.primaryColor;
    button.style.color = theme.textColor;
    button.style.border = 'none';
    button.style.borderRadius = radius;
    button.style.padding = '12px 16px';
    button.style.cursor = 'pointer';

    var panel = el('div');
    panel.style.display = 'none';
    panel.style.width = '350px';
    panel.style.background = theme.backgroundColor;
    panel.style.borderRadius = radius === '999px' ? '16px' : radius;
    panel.style.boxShadow = '0 10px 25px rgba(0, 0, 0, 0.1)';

    var header = el('div');
    header.style.background = theme.primaryColor;
    header.style.color = theme.textColor;
    header.style.padding = '12px';
    if (a.logo) {
      var logo = el('img');
      logo.src = a.logo;
      logo.alt = '';
      logo.style.height = '24px';
      header.appendChild(logo);
    }
    header.appendChild(el('strong', a.title));
    if (a.subtitle) { header.appendChild(el('div', a.subtitle)); }

    var messages = el('div');
    messages.style.height = '320px';
    messages.style.overflowY = 'auto';
    messages.style.padding = '12px';

    var form = el('form');
    form.style.display = 'flex';
    var input = el('input');
    input.type = 'text';
    input.placeholder = a.inputPlaceholder;
    input.style.flex = '1';
    var send = el('button', a.sendButtonText);
    send.type = 'submit';
    send.style.background = theme.primaryColor;
    send.style.color = theme.textColor;
    send.style.border = 'none';
    send.style.borderRadius = radius;
    form.appendChild(input);
    form.appendChild(send);

    panel.appendChild(header);
    panel.appendChild(messages);
    panel.appendChild(form);
    root.appendChild(panel);
    root.appendChild(button);

    addMessage(messages, 'assistant', a.welcomeMessage);
    return { root: root, button: button, panel: panel, messages: messages, form: form, input: input, open: false };
  }

  function addMessage(messages, role, text) {
    var row = el('div', text);
    row.style.margin = '6px 0';
    row.style.textAlign = role === 'user' ? 'right' : 'left';
    messages.appendChild(row);
    messages.scrollTop = messages.scrollHeight;
  }

  function toggle(ui, open) {
    ui.open = open === undefined ? !ui.open : open;
    ui.panel.style.display = ui.open ? 'block' : 'none';
  }

  function sessionKey(settings) {
    return 'conversa-session-' + settings.widgetId;
  }

  function setupEventListeners(ui, settings) {
    var persist = settings.behavior && settings.behavior.persistConversation;
    var sessionId = persist ? window.localStorage.getItem(sessionKey(settings)) : null;

    ui.button.addEventListener('click', function() { toggle(ui); });
    ui.form.addEventListener('submit', function(event) {
      event.preventDefault();
      var text = ui.input.value.trim();
      if (!text) { return; }
      ui.input.value = '';
      addMessage(ui.messages, 'user', text);
      fetch(apiBase + '/api/widget/chat/' + encodeURIComponent(settings.widgetId), {
        method: 'POST',
        headers: { 'Content-Type': 'application/json' },
        body: JSON.stringify({ session_id: sessionId || undefined, message: text })
      }).then(function(res) {
        return res.json();
      }).then(function(data) {
        if (data.session_id) {
          sessionId = data.session_id;
          if (persist) { window.localStorage.setItem(sessionKey(settings), sessionId); }
        }
        addMessage(ui.messages, 'assistant', data.answer || data.error || '');
      }).catch(function() {
        addMessage(ui.messages, 'assistant', settings.behavior.initialMessage);
      });
    });
  }

  return {
    init: init
  };
})();`

// GenerateFullWidgetScript serializes cfg into the script served at
// ScriptURL(cfg.WidgetID). It exposes init(options) on the global object,
// merging options over the embedded config at call time.
func (g *Generator) GenerateFullWidgetScript(cfg domain.WidgetConfig) (string, error) {
	if err := ValidateWidgetID(cfg.WidgetID); err != nil {
		return "", err
	}
	if err := cfg.Validate(); err != nil {
		return "", &domain.UnserializableConfigError{Reason: "config is invalid", Err: err}
	}
	if field, ok := invalidUTF8Field(cfg); ok {
		return "", &domain.UnserializableConfigError{Reason: field + " is not valid UTF-8"}
	}

	// encoding/json escapes <, >, &, U+2028 and U+2029, so the literal cannot
	// terminate the script element or the statement.
	data, err := json.Marshal(cfg)
	if err != nil {
		return "", &domain.UnserializableConfigError{Reason: "marshal config", Err: err}
	}

	r := strings.NewReplacer(
		"__GLOBAL__", g.globalName,
		"__CONFIG__", string(data),
		"__API_BASE__", template.JSEscapeString(g.baseURL),
		"__CONTAINER__", template.JSEscapeString(g.containerID),
	)
	return r.Replace(widgetRuntime), nil
}

func invalidUTF8Field(cfg domain.WidgetConfig) (string, bool) {
	fields := []struct {
		path  string
		value string
	}{
		{"widgetId", cfg.WidgetID},
		{"behavior.initialMessage", cfg.Behavior.InitialMessage},
		{"appearance.position", string(cfg.Appearance.Position)},
		{"appearance.logo", cfg.Appearance.Logo},
		{"appearance.title", cfg.Appearance.Title},
		{"appearance.subtitle", cfg.Appearance.Subtitle},
		{"appearance.welcomeMessage", cfg.Appearance.WelcomeMessage},
		{"appearance.inputPlaceholder", cfg.Appearance.InputPlaceholder},
		{"appearance.sendButtonText", cfg.Appearance.SendButtonText},
		{"appearance.theme.primaryColor", cfg.Appearance.Theme.PrimaryColor},
		{"appearance.theme.textColor", cfg.Appearance.Theme.TextColor},
		{"appearance.theme.backgroundColor", cfg.Appearance.Theme.BackgroundColor},
		{"appearance.theme.buttonStyle", string(cfg.Appearance.Theme.ButtonStyle)},
	}
	for _, f := range fields {
		if !utf8.ValidString(f.value) {
			return f.path, true
		}
	}
	return "", false
}
