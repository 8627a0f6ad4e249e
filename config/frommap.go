package config

// FromMap builds a Config from the generic decoded-document shape,
// starting from Default() and overlaying whatever groups are present.
// Unknown keys and groups are ignored, mirroring schema.FromMap's
// permissive walk.
func FromMap(m map[string]any) (Config, error) {
	c := Default()

	if p, ok := getMap(m, "parser"); ok {
		applyParser(&c.Parser, p)
	}
	if v, ok := getMap(m, "validator"); ok {
		applyValidator(&c.Validator, v)
	}
	if g, ok := getMap(m, "generator"); ok {
		applyGenerator(&c.Generator, g)
	}
	if ca, ok := getMap(m, "cache"); ok {
		applyCache(&c.Cache, ca)
	}
	if ex, ok := getMap(m, "expression"); ok {
		applyExpression(&c.Expression, ex)
	}
	if sl, ok := getMap(m, "security_limits"); ok {
		applySecurityLimits(&c.SecurityLimits, sl)
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func applyParser(p *Parser, m map[string]any) {
	if b, ok := getBool(m, "cache_enabled"); ok {
		p.CacheEnabled = b
	}
	if n, ok := getInt(m, "cache_size"); ok {
		p.CacheSize = n
	}
	if n, ok := getInt(m, "max_slots"); ok {
		p.MaxSlots = n
	}
	if n, ok := getInt(m, "max_classes"); ok {
		p.MaxClasses = n
	}
	if lst, ok := getStringList(m, "formats"); ok {
		p.Formats = lst
	}
}

func applyValidator(v *Validator, m map[string]any) {
	if n, ok := getInt(m, "parallelism"); ok {
		v.Parallelism = n
	}
	if n, ok := getInt(m, "batch_size"); ok {
		v.BatchSize = n
	}
	if n, ok := getInt(m, "timeout_ms"); ok {
		v.TimeoutMS = n
	}
	if b, ok := getBool(m, "fail_fast"); ok {
		v.FailFast = b
	}
	if n, ok := getInt(m, "max_errors"); ok {
		v.MaxErrors = n
	}
}

func applyGenerator(g *Generator, m map[string]any) {
	if s, ok := getString(m, "output_dir"); ok {
		g.OutputDir = s
	}
	if b, ok := getBool(m, "include_docs"); ok {
		g.IncludeDocs = b
	}
}

func applyCache(c *Cache, m map[string]any) {
	if n, ok := getInt(m, "max_entries"); ok {
		c.MaxEntries = n
	}
	if n, ok := getInt(m, "ttl_seconds"); ok {
		c.TTLSeconds = n
	}
	if s, ok := getString(m, "eviction_policy"); ok {
		c.Eviction = EvictionPolicy(s)
	}
}

func applyExpression(e *Expression, m map[string]any) {
	if b, ok := getBool(m, "enable_cache"); ok {
		e.EnableCache = b
	}
	if b, ok := getBool(m, "enable_compilation"); ok {
		e.EnableCompilation = b
	}
	if n, ok := getInt(m, "cache_size"); ok {
		e.CacheSize = n
	}
	if n, ok := getInt(m, "timeout_seconds"); ok {
		e.TimeoutSeconds = n
	}
	if n, ok := getInt(m, "max_recursion_depth"); ok {
		e.MaxRecursionDepth = n
	}
}

func applySecurityLimits(s *SecurityLimits, m map[string]any) {
	if n, ok := getInt(m, "max_string_length"); ok {
		s.MaxStringLength = n
	}
	if n, ok := getInt(m, "max_expression_depth"); ok {
		s.MaxExpressionDepth = n
	}
	if n, ok := getInt(m, "max_constraints_per_slot"); ok {
		s.MaxConstraintsPerSlot = n
	}
	if n, ok := getInt(m, "max_function_args"); ok {
		s.MaxFunctionArgs = n
	}
	if n, ok := getInt(m, "max_cache_entries"); ok {
		s.MaxCacheEntries = n
	}
	if n, ok := getInt(m, "max_json_size_bytes"); ok {
		s.MaxJSONSizeBytes = n
	}
	if n, ok := getInt(m, "max_slots_per_class"); ok {
		s.MaxSlotsPerClass = n
	}
	if n, ok := getInt(m, "max_classes_per_schema"); ok {
		s.MaxClassesPerSchema = n
	}
	if n, ok := getInt(m, "max_validation_errors"); ok {
		s.MaxValidationErrors = n
	}
}
