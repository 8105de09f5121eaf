package topology

import (
	"fmt"
	"strings"

	"github.com/napo-io/k8sway/internal/config"
)

const (
	metadataRegion = `$(curl -s http://169.254.169.254/latest/dynamic/instance-identity/document | grep region | awk -F\" '{print $4}')`
	metadataIP     = `$(curl -s http://169.254.169.254/1.0/meta-data/local-ipv4)`

	// AmazonLinuxParameter is the public SSM parameter holding the latest
	// Amazon Linux image of the region.
	AmazonLinuxParameter = "/aws/service/ami-amazon-linux-latest/amzn-ami-hvm-x86_64-gp2"

	changeBatchPath = "/tmp/route53-record.json"
)

// BootScriptInput holds the values baked into boot scripts.
type BootScriptInput struct {
	Role          string
	Zone          string
	ZoneID        string
	PodCIDRPrefix string
	TTL           int64
}

// BootScript returns the shell lines run at first boot for a role.
func BootScript(in BootScriptInput) ([]string, error) {
	zone := strings.TrimSuffix(in.Zone, ".")

	if in.Role == config.RoleBastion {
		return bastionScript(zone), nil
	}

	lines := []string{
		"sudo apt-get update",
		"sudo apt-get upgrade -y",
		"sudo apt-get install python3-pip -y",
		"sudo pip3 install awscli",
	}
	if in.Role == config.RoleWorker {
		lines = append(lines,
			"RANDOM_NUMBER=$(shuf -i 10-250 -n 1)",
			envExport("POD_CIDR", in.PodCIDRPrefix+".$RANDOM_NUMBER.0/24"),
		)
	}
	lines = append(lines,
		envExport("AWS_DEFAULT_REGION", metadataRegion),
		envExport("HOSTEDZONE_NAME", zone),
		envExport("INTERNAL_IP", metadataIP),
	)

	register, err := registrationLines(in.Role, zone, in.ZoneID, in.TTL)
	if err != nil {
		return nil, err
	}
	return append(lines, register...), nil
}

func bastionScript(zone string) []string {
	return []string{
		"sudo yum update",
		"sudo yum upgrade -y",
		"sudo yum install jq tmux -y",
		"wget https://gist.githubusercontent.com/dmytro/3984680/raw/1e25a9766b2f21d7a8e901492bbf9db672e0c871/ssh-multi.sh -O /home/ec2-user/tmux-multi.sh",
		"chmod +x /home/ec2-user/tmux-multi.sh",
		"wget https://pkg.cfssl.org/R1.2/cfssl_linux-amd64 && chmod +x cfssl_linux-amd64 && sudo mv cfssl_linux-amd64 /usr/local/bin/cfssl && sudo chown ec2-user:ec2-user /usr/local/bin/cfssl",
		"wget https://pkg.cfssl.org/R1.2/cfssljson_linux-amd64 && chmod +x cfssljson_linux-amd64 && sudo mv cfssljson_linux-amd64 /usr/local/bin/cfssljson && sudo chown ec2-user:ec2-user /usr/local/bin/cfssljson",
		"curl -LO https://storage.googleapis.com/kubernetes-release/release/$(curl -s https://storage.googleapis.com/kubernetes-release/release/stable.txt)/bin/linux/amd64/kubectl && chmod +x ./kubectl && sudo mv kubectl /usr/local/bin/kubectl && sudo chown ec2-user:ec2-user /usr/local/bin/kubectl",
		"sudo hostname bastion." + zone,
		envExport("AWS_DEFAULT_REGION", metadataRegion),
		envExport("HOSTEDZONE_NAME", zone),
	}
}

// registrationLines name the instance after its role and private address
// and publish an A record for it in the hosted zone.
func registrationLines(role, zone, zoneID string, ttl int64) ([]string, error) {
	batch := UpsertA("${NODE_NAME}."+zone+".", "${INTERNAL_IP}", ttl, "k8sway "+role+" self-registration")
	payload, err := batch.JSON()
	if err != nil {
		return nil, err
	}

	return []string{
		"INTERNAL_IP=" + metadataIP,
		fmt.Sprintf(`NODE_NAME=%s-$(echo "$INTERNAL_IP" | tr . -)`, role),
		fmt.Sprintf(`sudo hostnamectl set-hostname "$NODE_NAME.%s"`, zone),
		"cat > " + changeBatchPath + " <<EOF",
		payload,
		"EOF",
		fmt.Sprintf("aws route53 change-resource-record-sets --hosted-zone-id %s --change-batch file://%s", zoneID, changeBatchPath),
	}, nil
}

func envExport(name, value string) string {
	return fmt.Sprintf(`echo "%s=%s" | sudo tee -a /etc/environment`, name, value)
}

// RegistersDNS reports whether the role's boot script publishes its own
// DNS record.
func RegistersDNS(role string) bool {
	return role != config.RoleBastion
}

// RenderUserData joins boot script lines into a shell script.
func RenderUserData(lines []string) string {
	var b strings.Builder
	b.WriteString("#!/bin/bash\n")
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}
