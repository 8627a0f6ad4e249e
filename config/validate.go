package config

// Validate checks that every numeric limit across all six groups is
// strictly positive (a zero value is rejected, per the nested
// configuration record's rule) and that Cache.Eviction names a
// supported policy. Every violation is collected rather than
// returning on the first one, so a caller fixing a config file sees
// the whole list at once.
func (c Config) Validate() error {
	ve := &ValidationError{}

	positive := func(field string, n int) {
		if n <= 0 {
			ve.add(field, "must be strictly positive, got %d", n)
		}
	}

	positive("parser.cache_size", c.Parser.CacheSize)
	positive("parser.max_slots", c.Parser.MaxSlots)
	positive("parser.max_classes", c.Parser.MaxClasses)

	positive("validator.parallelism", c.Validator.Parallelism)
	positive("validator.batch_size", c.Validator.BatchSize)
	positive("validator.timeout_ms", c.Validator.TimeoutMS)
	positive("validator.max_errors", c.Validator.MaxErrors)

	positive("cache.max_entries", c.Cache.MaxEntries)
	positive("cache.ttl_seconds", c.Cache.TTLSeconds)
	if c.Cache.Eviction != EvictionLRU {
		ve.add("cache.eviction_policy", "unsupported eviction policy %q", c.Cache.Eviction)
	}

	positive("expression.cache_size", c.Expression.CacheSize)
	positive("expression.timeout_seconds", c.Expression.TimeoutSeconds)
	positive("expression.max_recursion_depth", c.Expression.MaxRecursionDepth)

	positive("security_limits.max_string_length", c.SecurityLimits.MaxStringLength)
	positive("security_limits.max_expression_depth", c.SecurityLimits.MaxExpressionDepth)
	positive("security_limits.max_constraints_per_slot", c.SecurityLimits.MaxConstraintsPerSlot)
	positive("security_limits.max_function_args", c.SecurityLimits.MaxFunctionArgs)
	positive("security_limits.max_cache_entries", c.SecurityLimits.MaxCacheEntries)
	positive("security_limits.max_json_size_bytes", c.SecurityLimits.MaxJSONSizeBytes)
	positive("security_limits.max_slots_per_class", c.SecurityLimits.MaxSlotsPerClass)
	positive("security_limits.max_classes_per_schema", c.SecurityLimits.MaxClassesPerSchema)
	positive("security_limits.max_validation_errors", c.SecurityLimits.MaxValidationErrors)

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}
