package dns

import "github.com/Builder-Lawyers/site-builder/pkg/env"

type DNSConfig struct {
	// BaseDomain hosts the default <slug>.<BaseDomain> address of every site.
	BaseDomain string
	// EdgeTarget is the hostname custom domains must CNAME to.
	EdgeTarget string
	// HostedZoneID of BaseDomain. Looked up by name when empty.
	HostedZoneID string
	// ManageRecords enables writing route53 records on publish.
	ManageRecords bool
	TTL           int64
}

func NewDNSConfig() *DNSConfig {
	base := env.GetEnv("BASE_DOMAIN", "sites.localhost")
	return &DNSConfig{
		BaseDomain:    base,
		EdgeTarget:    env.GetEnv("EDGE_TARGET", "edge."+base),
		HostedZoneID:  env.GetEnv("ROUTE53_HOSTED_ZONE_ID", ""),
		ManageRecords: env.GetEnvBool("ROUTE53_MANAGE_RECORDS", false),
		TTL:           int64(env.GetEnvInt("ROUTE53_TTL", 300)),
	}
}
