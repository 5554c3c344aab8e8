package dns

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/route53"
	rTypes "github.com/aws/aws-sdk-go-v2/service/route53/types"
	"github.com/aws/aws-sdk-go-v2/service/route53domains"
	rdTypes "github.com/aws/aws-sdk-go-v2/service/route53domains/types"
)

type Resolver interface {
	LookupCNAME(ctx context.Context, host string) (string, error)
}

type DNSProvisioner struct {
	cfg          *DNSConfig
	client       *route53.Client
	domainClient *route53domains.Client
	resolver     Resolver
}

func NewDNSProvisioner(awsConfig aws.Config, cfg *DNSConfig) *DNSProvisioner {
	// route53domains is only served from us-east-1
	domainClientCfg := awsConfig
	domainClientCfg.Region = "us-east-1"
	return &DNSProvisioner{
		cfg:          cfg,
		client:       route53.NewFromConfig(awsConfig),
		domainClient: route53domains.NewFromConfig(domainClientCfg),
		resolver:     net.DefaultResolver,
	}
}

func (d *DNSProvisioner) WithResolver(r Resolver) *DNSProvisioner {
	d.resolver = r
	return d
}

func (d *DNSProvisioner) Config() *DNSConfig {
	return d.cfg
}

// SiteHost is the default address of a site.
func (d *DNSProvisioner) SiteHost(slug string) string {
	return slug + "." + d.cfg.BaseDomain
}

func (d *DNSProvisioner) CheckAvailability(ctx context.Context, domain string) (bool, error) {
	out, err := d.domainClient.CheckDomainAvailability(ctx, &route53domains.CheckDomainAvailabilityInput{
		DomainName: aws.String(domain),
	})
	if err != nil {
		return false, err
	}
	return out.Availability == rdTypes.DomainAvailabilityAvailable, nil
}

// VerifyCNAME reports whether host resolves through a CNAME to the edge
// target. A lookup failure counts as not pointed.
func (d *DNSProvisioner) VerifyCNAME(ctx context.Context, host string) (bool, string) {
	cname, err := d.resolver.LookupCNAME(ctx, host)
	if err != nil {
		slog.Debug("cname lookup failed", "host", host, "err", err)
		return false, ""
	}
	got := strings.TrimSuffix(strings.ToLower(cname), ".")
	return got == strings.ToLower(d.cfg.EdgeTarget), got
}

func (d *DNSProvisioner) hostedZoneID(ctx context.Context) (string, error) {
	if d.cfg.HostedZoneID != "" {
		return d.cfg.HostedZoneID, nil
	}
	res, err := d.client.ListHostedZonesByName(ctx, &route53.ListHostedZonesByNameInput{
		DNSName: aws.String(d.cfg.BaseDomain),
	})
	if err != nil {
		return "", err
	}
	for _, zone := range res.HostedZones {
		if strings.TrimSuffix(aws.ToString(zone.Name), ".") == d.cfg.BaseDomain {
			id := strings.TrimPrefix(aws.ToString(zone.Id), "/hostedzone/")
			d.cfg.HostedZoneID = id
			return id, nil
		}
	}
	return "", fmt.Errorf("no hosted zone for %s", d.cfg.BaseDomain)
}

// UpsertSubdomain points <slug>.<base domain> at the edge target. It does
// nothing unless record management is enabled.
func (d *DNSProvisioner) UpsertSubdomain(ctx context.Context, slug string) error {
	return d.changeSubdomain(ctx, rTypes.ChangeActionUpsert, slug)
}

func (d *DNSProvisioner) DeleteSubdomain(ctx context.Context, slug string) error {
	return d.changeSubdomain(ctx, rTypes.ChangeActionDelete, slug)
}

func (d *DNSProvisioner) changeSubdomain(ctx context.Context, action rTypes.ChangeAction, slug string) error {
	if !d.cfg.ManageRecords {
		return nil
	}
	zoneID, err := d.hostedZoneID(ctx)
	if err != nil {
		return fmt.Errorf("err resolving hosted zone, %w", err)
	}

	resp, err := d.client.ChangeResourceRecordSets(ctx, &route53.ChangeResourceRecordSetsInput{
		HostedZoneId: aws.String(zoneID),
		ChangeBatch: &rTypes.ChangeBatch{
			Changes: []rTypes.Change{
				{
					Action: action,
					ResourceRecordSet: &rTypes.ResourceRecordSet{
						Name:            aws.String(d.SiteHost(slug)),
						Type:            rTypes.RRTypeCname,
						TTL:             aws.Int64(d.cfg.TTL),
						ResourceRecords: []rTypes.ResourceRecord{{Value: aws.String(d.cfg.EdgeTarget)}},
					},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to %s record for %s: %w", strings.ToLower(string(action)), slug, err)
	}

	slog.Info("record change submitted", "host", d.SiteHost(slug), "action", action, "changeID", aws.ToString(resp.ChangeInfo.Id))
	return nil
}
