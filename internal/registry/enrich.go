package registry

import "github.com/tidwall/gjson"

// enrichPackage reads optional fields straight from the raw payload.
// Their presence and shape differ between registry deployments, so they
// are probed with gjson instead of widening the typed structs.
func enrichPackage(pkg *Package, raw []byte) {
	if s := gjson.GetBytes(raw, "security_report_summary"); s.IsObject() {
		pkg.Security = &SecuritySummary{
			Critical: int(s.Get("critical").Int()),
			High:     int(s.Get("high").Int()),
			Medium:   int(s.Get("medium").Int()),
			Low:      int(s.Get("low").Int()),
		}
	}

	if org := gjson.GetBytes(raw, "repository.organization_display_name"); org.Exists() {
		pkg.OrgDisplayName = org.String()
	}
}
