package cloudhsm

import (
	"context"
	"fmt"
	"sort"

	"github.com/hsmctl/hsmctl/internal/config"
	"github.com/hsmctl/hsmctl/internal/util/retry"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudhsmv2"
	"github.com/aws/aws-sdk-go-v2/service/cloudhsmv2/types"
)

// clusterIDFilter is the DescribeClusters filter key for exact-ID lookup.
const clusterIDFilter = "clusterIds"

// RealClient implements Manager using the AWS CloudHSM v2 API.
type RealClient struct {
	api      *cloudhsmv2.Client
	timeouts *config.Timeouts
}

// ClientOption configures a RealClient.
type ClientOption func(*RealClient)

// WithTimeouts sets custom timeouts for the client.
func WithTimeouts(t *config.Timeouts) ClientOption {
	return func(c *RealClient) {
		c.timeouts = t
	}
}

// WithAPI sets a custom CloudHSM API client (useful for testing).
func WithAPI(api *cloudhsmv2.Client) ClientOption {
	return func(c *RealClient) {
		c.api = api
	}
}

// NewRealClient creates a new RealClient from a resolved AWS configuration.
func NewRealClient(awsCfg aws.Config, opts ...ClientOption) *RealClient {
	c := &RealClient{
		api:      cloudhsmv2.NewFromConfig(awsCfg),
		timeouts: config.LoadTimeouts(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CreateCluster creates a new CloudHSM cluster spanning the given subnets.
// The immediate response carries the cluster identifier; the cluster itself
// converges asynchronously.
func (c *RealClient) CreateCluster(ctx context.Context, opts CreateClusterOpts) (*ClusterSnapshot, error) {
	tags := []types.Tag{{Key: aws.String("Name"), Value: aws.String(opts.Name)}}

	keys := make([]string, 0, len(opts.Tags))
	for k := range opts.Tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		tags = append(tags, types.Tag{Key: aws.String(k), Value: aws.String(opts.Tags[k])})
	}

	out, err := c.api.CreateCluster(ctx, &cloudhsmv2.CreateClusterInput{
		HsmType:   aws.String(opts.HSMType),
		SubnetIds: opts.SubnetIDs,
		TagList:   tags,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create cluster %s: %w", opts.Name, err)
	}
	if out.Cluster == nil {
		return nil, fmt.Errorf("create cluster %s: provider returned no cluster record", opts.Name)
	}
	return snapshotFromCluster(*out.Cluster), nil
}

// DescribeCluster returns a fresh snapshot of the cluster with the given ID.
// An empty result collection and an unmatched identifier are both reported
// as ErrClusterNotFound; neither is retried here.
func (c *RealClient) DescribeCluster(ctx context.Context, clusterID string) (*ClusterSnapshot, error) {
	out, err := c.api.DescribeClusters(ctx, &cloudhsmv2.DescribeClustersInput{
		Filters: map[string][]string{clusterIDFilter: {clusterID}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe cluster %s: %w", clusterID, err)
	}
	if len(out.Clusters) == 0 {
		return nil, fmt.Errorf("cluster %s: %w", clusterID, ErrClusterNotFound)
	}
	return snapshotFromCluster(out.Clusters[0]), nil
}

// FindClusterByName scans all clusters for a non-deleted one carrying the
// given Name tag. Returns nil without error if none exists, so apply can
// decide between reuse and creation.
func (c *RealClient) FindClusterByName(ctx context.Context, name string) (*ClusterSnapshot, error) {
	var nextToken *string
	for {
		out, err := c.api.DescribeClusters(ctx, &cloudhsmv2.DescribeClustersInput{
			NextToken: nextToken,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list clusters: %w", err)
		}

		for _, cluster := range out.Clusters {
			if cluster.State == types.ClusterStateDeleted {
				continue
			}
			for _, tag := range cluster.TagList {
				if aws.ToString(tag.Key) == "Name" && aws.ToString(tag.Value) == name {
					return snapshotFromCluster(cluster), nil
				}
			}
		}

		if out.NextToken == nil {
			return nil, nil
		}
		nextToken = out.NextToken
	}
}

// InitializeCluster submits the signed cluster certificate and trust anchor.
// The returned state is the provider's immediate answer and is not
// authoritative; callers poll for the real outcome.
func (c *RealClient) InitializeCluster(ctx context.Context, clusterID, signedCert, trustAnchor string) (string, error) {
	out, err := c.api.InitializeCluster(ctx, &cloudhsmv2.InitializeClusterInput{
		ClusterId:   aws.String(clusterID),
		SignedCert:  aws.String(signedCert),
		TrustAnchor: aws.String(trustAnchor),
	})
	if err != nil {
		return "", fmt.Errorf("failed to initialize cluster %s: %w", clusterID, err)
	}
	return string(out.State), nil
}

// DeleteCluster deletes the cluster. All HSM nodes must already be removed.
// Transient provider failures are retried with exponential backoff; a
// missing cluster counts as success.
func (c *RealClient) DeleteCluster(ctx context.Context, clusterID string) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeouts.Delete)
	defer cancel()

	return retry.WithExponentialBackoff(ctx, func() error {
		_, err := c.api.DeleteCluster(ctx, &cloudhsmv2.DeleteClusterInput{
			ClusterId: aws.String(clusterID),
		})
		if err != nil {
			if IsNotFound(err) {
				return nil
			}
			if isInvalidRequest(err) {
				// Usually means HSM nodes are still attached.
				return retry.Fatal(fmt.Errorf("cluster %s cannot be deleted yet: %w", clusterID, err))
			}
			if isRetryableServiceError(err) {
				return err
			}
			return retry.Fatal(err)
		}
		return nil
	},
		retry.WithMaxRetries(c.timeouts.RetryMaxAttempts),
		retry.WithInitialDelay(c.timeouts.RetryInitialDelay))
}

// CreateHSM adds an HSM node to the cluster in the given availability zone.
func (c *RealClient) CreateHSM(ctx context.Context, clusterID, availabilityZone string) (string, error) {
	out, err := c.api.CreateHsm(ctx, &cloudhsmv2.CreateHsmInput{
		ClusterId:        aws.String(clusterID),
		AvailabilityZone: aws.String(availabilityZone),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create HSM in cluster %s: %w", clusterID, err)
	}
	if out.Hsm == nil {
		return "", fmt.Errorf("create HSM in cluster %s: provider returned no HSM record", clusterID)
	}
	return aws.ToString(out.Hsm.HsmId), nil
}

// DeleteHSM removes an HSM node from the cluster. A missing node counts as
// success; transient provider failures are retried.
func (c *RealClient) DeleteHSM(ctx context.Context, clusterID, hsmID string) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeouts.Delete)
	defer cancel()

	return retry.WithExponentialBackoff(ctx, func() error {
		_, err := c.api.DeleteHsm(ctx, &cloudhsmv2.DeleteHsmInput{
			ClusterId: aws.String(clusterID),
			HsmId:     aws.String(hsmID),
		})
		if err != nil {
			if IsNotFound(err) {
				return nil
			}
			if isRetryableServiceError(err) {
				return err
			}
			return retry.Fatal(err)
		}
		return nil
	},
		retry.WithMaxRetries(c.timeouts.RetryMaxAttempts),
		retry.WithInitialDelay(c.timeouts.RetryInitialDelay))
}
