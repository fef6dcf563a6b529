package analysis

import (
	"fmt"
	"strings"

	"github.com/oxygene76/skycalc/internal/types"
	"github.com/oxygene76/skycalc/pkg/opt"
)

// NoAnalysisMessage is reported when no run has succeeded yet.
const NoAnalysisMessage = "No analysis available"

var rule = strings.Repeat("=", 60)

// RenderReport formats the stored result. Values are printed as stored;
// nothing is recomputed.
func RenderReport(s *Store) string {
	res, ok := s.Last()
	if !ok {
		return NoAnalysisMessage
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\nASTRONOMICAL ANALYSIS REPORT\n%s\n\n", rule, rule)
	fmt.Fprintf(&b, "Source: %s\n", res.SourceName)
	fmt.Fprintf(&b, "Objects analyzed: %d\n", res.RowCount)
	fmt.Fprintf(&b, "Domains applied: %s\n", joinDomains(res.DomainsApplied))

	if len(res.ClassCounts) > 0 {
		b.WriteString("\nClass distribution:\n")
		for _, c := range res.ClassCounts {
			fmt.Fprintf(&b, "   - %s: %d\n", c.Class, c.Count)
		}
	}

	if c := res.Cosmology; c != nil {
		fmt.Fprintf(&b, "\nCOSMOLOGICAL RESULTS (redshift column %q):\n", c.SourceColumn)
		fmt.Fprintf(&b, "   - Mean distance: %s Mpc\n", format(c.MeanDistanceMpc, 2))
		fmt.Fprintf(&b, "   - Max distance: %s Mpc\n", format(c.MaxDistanceMpc, 2))
		fmt.Fprintf(&b, "   - Mean redshift: %s\n", format(c.MeanRedshift, 4))
		fmt.Fprintf(&b, "   - Objects processed: %d\n", c.Processed)
	}

	if p := res.Photometry; p != nil {
		b.WriteString("\nPHOTOMETRIC RESULTS (photo-z):\n")
		fmt.Fprintf(&b, "   - Mean photo-z: %s\n", format(p.MeanPhotoZ, 4))
		fmt.Fprintf(&b, "   - Photo-z range: %s - %s\n", format(p.MinPhotoZ, 4), format(p.MaxPhotoZ, 4))
		fmt.Fprintf(&b, "   - Objects with photo-z: %d/%d\n", p.Valid, res.RowCount)
		if len(p.Qualities) > 0 {
			b.WriteString("   - Estimate quality:\n")
			for _, q := range p.Qualities {
				fmt.Fprintf(&b, "      - %s: %d objects\n", q.Quality, q.Count)
			}
		}
	}

	if o := res.Orbital; o != nil {
		b.WriteString("\nORBITAL RESULTS (small bodies):\n")
		fmt.Fprintf(&b, "   - Mean period: %s years\n", format(o.MeanPeriodYears, 2))
		fmt.Fprintf(&b, "   - Mean speed: %s km/s\n", format(o.MeanSpeedKMS, 2))
		fmt.Fprintf(&b, "   - Objects processed: %d\n", o.Processed)
	}

	if e := res.Exoplanet; e != nil {
		b.WriteString("\nEXOPLANET RESULTS:\n")
		fmt.Fprintf(&b, "   - Mean orbital speed: %s km/s\n", format(e.MeanSpeedKMS, 2))
		fmt.Fprintf(&b, "   - Objects processed: %d\n", e.Processed)
	}

	fmt.Fprintf(&b, "\n%s\n", rule)
	return b.String()
}

func joinDomains(ds []types.Domain) string {
	if len(ds) == 0 {
		return "none"
	}
	names := make([]string, len(ds))
	for i, d := range ds {
		names[i] = string(d)
	}
	return strings.Join(names, ", ")
}

func format(f opt.Float, prec int) string {
	if !f.Valid {
		return "n/a"
	}
	return fmt.Sprintf("%.*f", prec, f.Value)
}
