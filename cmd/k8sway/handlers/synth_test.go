package handlers

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sigsyaml "sigs.k8s.io/yaml"

	"github.com/napo-io/k8sway/internal/cfn"
	"github.com/napo-io/k8sway/internal/image"
	"github.com/napo-io/k8sway/internal/platform/aws"
)

func TestSynth_Stdout(t *testing.T) {
	out := stubEnvironment(t, &aws.MockClient{})

	require.NoError(t, Synth(context.Background(), quiet(), SynthOptions{Output: "-"}))

	var tmpl cfn.Template
	require.NoError(t, json.Unmarshal(out.Bytes(), &tmpl))
	assert.Equal(t, cfn.FormatVersion, tmpl.AWSTemplateFormatVersion)
	assert.Len(t, tmpl.ResourcesOfType(cfn.TypeAutoScalingGroup), 4)
	assert.Equal(t, "ami-us-east-1", tmpl.Mappings[cfn.ImageMapName]["us-east-1"][cfn.ImageMapKey])
}

func TestSynth_ImagesFileToYAML(t *testing.T) {
	client := &aws.MockClient{
		DescribeImagesFunc: func(context.Context, string, aws.ImageFilter) ([]aws.Image, error) {
			t.Error("a saved mapping skips the lookup")
			return nil, nil
		},
	}
	out := stubEnvironment(t, client)

	dir := t.TempDir()
	imagesPath := filepath.Join(dir, "images.yaml")
	require.NoError(t, image.NewMapping(map[string]string{"us-east-1": "ami-saved"}).Save(imagesPath, image.Query{}))
	templatePath := filepath.Join(dir, "template.yaml")

	require.NoError(t, Synth(context.Background(), quiet(), SynthOptions{
		ImagesFile: imagesPath,
		Format:     "yaml",
		Output:     templatePath,
	}))
	assert.Contains(t, out.String(), "Template written to")

	data, err := os.ReadFile(templatePath)
	require.NoError(t, err)
	var tmpl cfn.Template
	require.NoError(t, sigsyaml.Unmarshal(data, &tmpl))
	assert.Equal(t, "ami-saved", tmpl.Mappings[cfn.ImageMapName]["us-east-1"][cfn.ImageMapKey])
}

func TestSynth_Errors(t *testing.T) {
	stubEnvironment(t, &aws.MockClient{
		GetPublicIPFunc: func(context.Context) (string, error) {
			return "", assert.AnError
		},
	})

	err := Synth(context.Background(), quiet(), SynthOptions{Format: "toml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown template format")

	err = Synth(context.Background(), quiet(), SynthOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "synthesis failed")
}
