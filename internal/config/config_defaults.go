package config

import (
	"time"

	"github.com/spf13/viper"
)

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	// AI Configuration - Global defaults
	v.SetDefault("ai.provider", "gemini")
	v.SetDefault("ai.model", "gemini-2.0-flash")
	v.SetDefault("ai.timeout", 60*time.Second)
	v.SetDefault("ai.apiKey", "")
	v.SetDefault("ai.maxRetries", 3)
	v.SetDefault("ai.temperature", 0.7)
	v.SetDefault("ai.useSystemPrompts", true)

	// AI Configuration - SummarizeReviews operation defaults
	v.SetDefault("ai.summarizeReviews.provider", "gemini")
	v.SetDefault("ai.summarizeReviews.model", "")
	v.SetDefault("ai.summarizeReviews.timeout", 90*time.Second) // Review batches can be large
	v.SetDefault("ai.summarizeReviews.apiKey", "")
	v.SetDefault("ai.summarizeReviews.maxRetries", 2)
	v.SetDefault("ai.summarizeReviews.temperature", 0.3)
	v.SetDefault("ai.summarizeReviews.useSystemPrompts", true)

	// AI Configuration - SummarizeOverview operation defaults
	v.SetDefault("ai.summarizeOverview.provider", "gemini")
	v.SetDefault("ai.summarizeOverview.model", "")
	v.SetDefault("ai.summarizeOverview.timeout", 60*time.Second)
	v.SetDefault("ai.summarizeOverview.apiKey", "")
	v.SetDefault("ai.summarizeOverview.maxRetries", 3)
	v.SetDefault("ai.summarizeOverview.temperature", 0.2)
	v.SetDefault("ai.summarizeOverview.useSystemPrompts", true)

	// AI Configuration - ExtractSkills operation defaults
	v.SetDefault("ai.extractSkills.provider", "gemini")
	v.SetDefault("ai.extractSkills.model", "")
	v.SetDefault("ai.extractSkills.timeout", 60*time.Second)
	v.SetDefault("ai.extractSkills.apiKey", "")
	v.SetDefault("ai.extractSkills.maxRetries", 3)
	v.SetDefault("ai.extractSkills.temperature", 0.1) // Entity extraction must stay factual
	v.SetDefault("ai.extractSkills.useSystemPrompts", true)

	// AI Configuration - ComposeReport operation defaults
	v.SetDefault("ai.composeReport.provider", "gemini")
	v.SetDefault("ai.composeReport.model", "")
	v.SetDefault("ai.composeReport.timeout", 90*time.Second) // Reports combine every upstream result
	v.SetDefault("ai.composeReport.apiKey", "")
	v.SetDefault("ai.composeReport.maxRetries", 2)
	v.SetDefault("ai.composeReport.temperature", 0.4)
	v.SetDefault("ai.composeReport.useSystemPrompts", true)

	// Circuit Breaker Configuration defaults for all operations
	for _, op := range []string{"summarizeReviews", "summarizeOverview", "extractSkills", "composeReport"} {
		v.SetDefault("ai."+op+".circuitBreaker.enabled", true)
		v.SetDefault("ai."+op+".circuitBreaker.maxRequests", 3)
		v.SetDefault("ai."+op+".circuitBreaker.interval", 60*time.Second)
		v.SetDefault("ai."+op+".circuitBreaker.timeout", 60*time.Second)
		v.SetDefault("ai."+op+".circuitBreaker.minRequests", 3)
		v.SetDefault("ai."+op+".circuitBreaker.failureThreshold", 0.6)
	}

	// Resume Configuration
	v.SetDefault("resume.sections", []map[string]any{
		{"id": "Summary", "pattern": ""},
		{"id": "Professional Experience", "pattern": ""},
		{"id": "Education", "pattern": ""},
		{"id": "Skills", "pattern": ""},
		{"id": "Certifications", "pattern": ""},
	})
	v.SetDefault("resume.experienceKey", "Professional Experience")

	// Search Configuration
	v.SetDefault("search.apiKey", "")
	v.SetDefault("search.engineId", "")
	v.SetDefault("search.reviewSites", []string{"glassdoor.com", "indeed.com"})
	v.SetDefault("search.maxReviews", 10)
	v.SetDefault("search.maxOverviewResults", 3)
	v.SetDefault("search.batchSize", 2)
	v.SetDefault("search.queriesPerMinute", 60)

	// Sentiment Configuration
	v.SetDefault("sentiment.endpoint", "")
	v.SetDefault("sentiment.apiKey", "")
	v.SetDefault("sentiment.timeout", 30*time.Second)
	v.SetDefault("sentiment.maxRetries", 2)
	v.SetDefault("sentiment.batchSize", 16)
	v.SetDefault("sentiment.circuitBreaker.enabled", true)
	v.SetDefault("sentiment.circuitBreaker.maxRequests", 3)
	v.SetDefault("sentiment.circuitBreaker.interval", 60*time.Second)
	v.SetDefault("sentiment.circuitBreaker.timeout", 60*time.Second)
	v.SetDefault("sentiment.circuitBreaker.minRequests", 3)
	v.SetDefault("sentiment.circuitBreaker.failureThreshold", 0.6)

	// Server Configuration
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.readTimeout", 30*time.Second)
	v.SetDefault("server.writeTimeout", 30*time.Second)
	v.SetDefault("server.idleTimeout", 120*time.Second)
	// TLS Configuration defaults
	v.SetDefault("server.tls.mode", "disabled") // disabled, server, mutual
	v.SetDefault("server.tls.certFile", "")
	v.SetDefault("server.tls.keyFile", "")
	v.SetDefault("server.tls.caFile", "")
	v.SetDefault("server.tls.minVersion", "1.2")           // TLS 1.2 minimum
	v.SetDefault("server.tls.cipherSuites", []string{})    // Use Go defaults
	v.SetDefault("server.tls.clientAuthPolicy", "require") // require, request, verify
	v.SetDefault("server.tls.insecureSkipVerify", false)
	v.SetDefault("server.tls.serverName", "")

	// Auto-reload configuration defaults
	v.SetDefault("server.tls.autoReload.enabled", true)
	v.SetDefault("server.tls.autoReload.checkInterval", 30*time.Second)
	v.SetDefault("server.tls.autoReload.preemptiveRenewal", 72*time.Hour) // 72 hours before expiry
	v.SetDefault("server.tls.autoReload.maxRetries", 3)
	v.SetDefault("server.tls.autoReload.retryDelay", 10*time.Second)

	// File watcher defaults
	v.SetDefault("server.tls.autoReload.fileWatcher.enabled", true)
	v.SetDefault("server.tls.autoReload.fileWatcher.debounceDelay", time.Second)

	// Vault watcher defaults
	v.SetDefault("server.tls.autoReload.vaultWatcher.enabled", false)
	v.SetDefault("server.tls.autoReload.vaultWatcher.pollInterval", 5*time.Minute)
	v.SetDefault("server.tls.autoReload.vaultWatcher.autoRenew", true)
	v.SetDefault("server.tls.autoReload.vaultWatcher.renewThreshold", 24*time.Hour)
	v.SetDefault("server.tls.autoReload.vaultWatcher.secretPath", "")
	// API Authentication defaults
	v.SetDefault("server.apiKeys", []string{})
	// Rate limiting defaults
	v.SetDefault("server.rateLimit.enabled", false)
	v.SetDefault("server.rateLimit.requestsPerMin", 60)
	v.SetDefault("server.rateLimit.burstCapacity", 10)
	v.SetDefault("server.rateLimit.byIP", true)
	v.SetDefault("server.rateLimit.byAPIKey", false)
	v.SetDefault("server.rateLimit.window", time.Minute)

	// App Configuration
	v.SetDefault("app.logLevel", "info")
	v.SetDefault("app.defaultFormat", "json")
	v.SetDefault("app.supportedFormats", []string{"json", "text", "markdown"})
	v.SetDefault("app.maxFileSize", 10*1024*1024) // 10MB, resumes arrive as PDFs

	// Vault Configuration
	v.SetDefault("vault.enabled", false)
	v.SetDefault("vault.address", "")
	v.SetDefault("vault.token", "")
	v.SetDefault("vault.tokenFile", "")
	v.SetDefault("vault.namespace", "")
	v.SetDefault("vault.secrets.apiKeys", "")
	v.SetDefault("vault.secrets.geminiKey", "")
	v.SetDefault("vault.secrets.searchKey", "")
	v.SetDefault("vault.secrets.classifierKey", "")
	v.SetDefault("vault.secrets.tlsCerts", "")

	// Observability Configuration
	v.SetDefault("observability.enabled", true)
	v.SetDefault("observability.serviceName", "jobscout")
	v.SetDefault("observability.serviceVersion", "")  // Will use app version if empty
	v.SetDefault("observability.serviceInstance", "") // Will be auto-generated if empty
	v.SetDefault("observability.consoleOutput", false)
	v.SetDefault("observability.sampleRate", 1.0)

	// Tracing Configuration
	v.SetDefault("observability.tracing.enabled", true)
	v.SetDefault("observability.tracing.sampleRate", 1.0)

	// Metrics Configuration
	v.SetDefault("observability.metrics.enabled", true)
	v.SetDefault("observability.metrics.collectionInterval", 15*time.Second)

	// Custom Metrics Configuration
	v.SetDefault("observability.customMetrics.aiOperations.enabled", true)
	v.SetDefault("observability.customMetrics.aiOperations.trackDuration", true)
	v.SetDefault("observability.customMetrics.aiOperations.trackTokenUsage", true)
	v.SetDefault("observability.customMetrics.aiOperations.trackModelInfo", true)
	v.SetDefault("observability.customMetrics.businessMetrics.enabled", true)
	v.SetDefault("observability.customMetrics.businessMetrics.trackSuccessRates", true)
	v.SetDefault("observability.customMetrics.businessMetrics.trackContentSizes", true)
	v.SetDefault("observability.customMetrics.infrastructure.enabled", true)
	v.SetDefault("observability.customMetrics.infrastructure.trackRateLimits", true)
	v.SetDefault("observability.customMetrics.infrastructure.trackCertExpiry", true)

	// Console Configuration
	v.SetDefault("observability.console.enabled", false)
	v.SetDefault("observability.console.prettyPrint", true)

	// Prometheus Configuration
	v.SetDefault("observability.prometheus.enabled", true)
	v.SetDefault("observability.prometheus.endpoint", "/metrics")
	v.SetDefault("observability.prometheus.port", "9090")

	// OTLP Configuration
	v.SetDefault("observability.otlp.enabled", false)
	v.SetDefault("observability.otlp.endpoint", "http://localhost:4318")
	v.SetDefault("observability.otlp.insecure", true)
	v.SetDefault("observability.otlp.headers", map[string]string{})

	// Health Check Configuration
	v.SetDefault("observability.healthCheck.timeout", 15*time.Second)
	v.SetDefault("observability.healthCheck.aiModelCheckTimeout", 10*time.Second)
}
