package config

// applyOperationDefaults applies global defaults to operation-specific configuration
func (c *Config) applyOperationDefaults(opCfg *OperationAIConfig) {
	if opCfg.Provider == "" {
		opCfg.Provider = c.AI.Provider
	}
	if opCfg.Model == "" {
		opCfg.Model = c.AI.Model
	}
	if opCfg.Timeout == nil {
		opCfg.Timeout = &c.AI.Timeout
	}
	if opCfg.APIKey == "" {
		opCfg.APIKey = c.AI.APIKey
	}
	if opCfg.MaxRetries == nil {
		opCfg.MaxRetries = &c.AI.MaxRetries
	}
	if opCfg.Temperature == nil {
		opCfg.Temperature = &c.AI.Temperature
	}
	// UseSystemPrompts: apply global default only if not explicitly set
	if opCfg.UseSystemPrompts == nil {
		opCfg.UseSystemPrompts = &c.AI.UseSystemPrompts
	}
}

// GetSummarizeReviewsConfig returns the AI configuration for review
// summarization with fallback to global config
func (c *Config) GetSummarizeReviewsConfig() OperationAIConfig {
	config := c.AI.SummarizeReviews
	c.applyOperationDefaults(&config)
	return config
}

// GetSummarizeOverviewConfig returns the AI configuration for company
// overview summarization with fallback to global config
func (c *Config) GetSummarizeOverviewConfig() OperationAIConfig {
	config := c.AI.SummarizeOverview
	c.applyOperationDefaults(&config)
	return config
}

// GetExtractSkillsConfig returns the AI configuration for skill entity
// extraction with fallback to global config
func (c *Config) GetExtractSkillsConfig() OperationAIConfig {
	config := c.AI.ExtractSkills
	c.applyOperationDefaults(&config)
	return config
}

// GetComposeReportConfig returns the AI configuration for report composition
// with fallback to global config
func (c *Config) GetComposeReportConfig() OperationAIConfig {
	config := c.AI.ComposeReport
	c.applyOperationDefaults(&config)
	return config
}

// GetLoadedSummarizeReviewsPrompts returns a copy of the loaded prompts for review summarization
func (c *Config) GetLoadedSummarizeReviewsPrompts() OperationLoadedPrompts {
	return loadedPrompts.SummarizeReviews
}

// GetLoadedSummarizeOverviewPrompts returns a copy of the loaded prompts for overview summarization
func (c *Config) GetLoadedSummarizeOverviewPrompts() OperationLoadedPrompts {
	return loadedPrompts.SummarizeOverview
}

// GetLoadedExtractSkillsPrompts returns a copy of the loaded prompts for skill extraction
func (c *Config) GetLoadedExtractSkillsPrompts() OperationLoadedPrompts {
	return loadedPrompts.ExtractSkills
}

// GetLoadedComposeReportPrompts returns a copy of the loaded prompts for report composition
func (c *Config) GetLoadedComposeReportPrompts() OperationLoadedPrompts {
	return loadedPrompts.ComposeReport
}
