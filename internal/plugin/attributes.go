package plugin

import (
	"go.opentelemetry.io/otel/attribute"
)

// Attribute keys for observability, under the "visplug.plugin.*" namespace.
const (
	// AttrPluginName is the derived plugin name
	AttrPluginName = "visplug.plugin.name"

	// AttrPluginURL is the canonical clone URL
	AttrPluginURL = "visplug.plugin.url"

	// AttrPluginCategory is the storage category (plugin or theme)
	AttrPluginCategory = "visplug.plugin.category"

	// AttrPluginRef is the pinned ref used for a checkout
	AttrPluginRef = "visplug.plugin.ref"

	// AttrBatchSize is the number of plugins in an orchestration batch
	AttrBatchSize = "visplug.batch.size"

	// AttrBatchCloned is the number of repositories cloned in a batch
	AttrBatchCloned = "visplug.batch.cloned"

	// AttrBatchUpdated is the number of repositories pulled in a batch
	AttrBatchUpdated = "visplug.batch.updated"

	// AttrBatchFailed is the number of per-plugin failures in a batch
	AttrBatchFailed = "visplug.batch.failed"
)

// Span name constants for orchestration operations.
const (
	// SpanInstallAll represents a batch install operation
	SpanInstallAll = "visplug.plugin.install_all"

	// SpanUpdateAll represents a batch update operation
	SpanUpdateAll = "visplug.plugin.update_all"

	// SpanOutdated represents a batch outdated check
	SpanOutdated = "visplug.plugin.outdated"

	// SpanCheckout represents a single-plugin checkout
	SpanCheckout = "visplug.plugin.checkout"
)

// PluginAttributes creates OpenTelemetry attributes from a Plugin.
func PluginAttributes(p *Plugin) []attribute.KeyValue {
	if p == nil {
		return []attribute.KeyValue{}
	}

	attrs := []attribute.KeyValue{
		attribute.String(AttrPluginName, p.Name),
		attribute.String(AttrPluginURL, p.URL),
		attribute.String(AttrPluginCategory, p.Category.String()),
	}

	if ref := p.Ref(); ref != "" {
		attrs = append(attrs, attribute.String(AttrPluginRef, ref))
	}

	return attrs
}
