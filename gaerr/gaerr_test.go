package gaerr_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pkg/errors"

	"github.com/tfki/galib/gaerr"
)

func TestReportWritesToStreamAndRecordsLast(t *testing.T) {
	var buf bytes.Buffer
	rep := gaerr.NewReporter(&buf)

	err := rep.Report(gaerr.Here(), "array.Genome", "OnePointCrossover", gaerr.SameLengthRequired, "lengths 10 and 12")
	if err == nil {
		t.Fatal("Report returned nil")
	}
	if !strings.Contains(buf.String(), "SameLengthRequired") {
		t.Errorf("stream output %q missing the error kind", buf.String())
	}
	if got := rep.Last(); got != err.Error() {
		t.Errorf("Last() = %q; want %q", got, err.Error())
	}
}

func TestSilenceSuppressesStreamButNotLast(t *testing.T) {
	var buf bytes.Buffer
	rep := gaerr.NewReporter(&buf)
	rep.Silence(true)

	rep.Report(gaerr.Here(), "c", "f", gaerr.BadProbValue, "p = 1.5")
	if buf.Len() != 0 {
		t.Errorf("silenced reporter still wrote %q", buf.String())
	}
	if rep.Last() == "" {
		t.Error("silenced reporter did not record the last error")
	}
}

func TestRedirectSwitchesStream(t *testing.T) {
	var first, second bytes.Buffer
	rep := gaerr.NewReporter(&first)
	rep.Report(gaerr.Here(), "c", "f", gaerr.OpUndef, "")
	rep.Redirect(&second)
	rep.Report(gaerr.Here(), "c", "f", gaerr.OpUndef, "")

	if first.Len() == 0 || second.Len() == 0 {
		t.Errorf("Redirect did not split output between streams (first=%d second=%d bytes)", first.Len(), second.Len())
	}
}

func TestGAErrorUnwrapsToKindMessage(t *testing.T) {
	rep := gaerr.NewReporter(nil)
	rep.Silence(true)
	err := rep.Report(gaerr.Here(), "c", "f", gaerr.BadParentLength, "parents must be the same length")

	cause := errors.Cause(err)
	if cause == nil || !strings.Contains(cause.Error(), "BadParentLength") {
		t.Errorf("errors.Cause = %v; want an error naming BadParentLength", cause)
	}
	if err.Kind != gaerr.BadParentLength {
		t.Errorf("Kind = %v; want BadParentLength", err.Kind)
	}
}

func TestKindStringCoversCatalogue(t *testing.T) {
	kinds := []gaerr.ErrorKind{
		gaerr.SameLengthRequired, gaerr.SameBehaviorRequired, gaerr.BadParentLength,
		gaerr.BadResizeBehavior, gaerr.OpUndef, gaerr.ReadError, gaerr.WriteError,
		gaerr.BadProbValue, gaerr.ObjectTypeMismatch, gaerr.RefsRemain,
		gaerr.NoIndividuals, gaerr.BadPopSize, gaerr.NoSexualMating,
		gaerr.BadSharingCutoff, gaerr.NegFitness, gaerr.BinStrTooLong, gaerr.BadAlleleIndex,
	}
	for _, k := range kinds {
		if k.String() == "UnknownError" {
			t.Errorf("kind %d has no name", int(k))
		}
	}
}
