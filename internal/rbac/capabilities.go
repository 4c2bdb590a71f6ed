// Copyright (c) 2026 John Dewey

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER
// DEALINGS IN THE SOFTWARE.

package rbac

// Capabilities are the flags UI components check before offering an action.
type Capabilities struct {
	CanAuditlog        bool `json:"canAuditlog"`
	CanConfigure       bool `json:"canConfigure"`
	CanDeploy          bool `json:"canDeploy"`
	CanManageDevices   bool `json:"canManageDevices"`
	CanManageReleases  bool `json:"canManageReleases"`
	CanManageUsers     bool `json:"canManageUsers"`
	CanReadDeployments bool `json:"canReadDeployments"`
	CanReadDevices     bool `json:"canReadDevices"`
	CanReadReleases    bool `json:"canReadReleases"`
	CanReadUsers       bool `json:"canReadUsers"`
	CanTroubleshoot    bool `json:"canTroubleshoot"`
	CanUploadReleases  bool `json:"canUploadReleases"`
	CanWriteDevices    bool `json:"canWriteDevices"`
}

// DeriveCapabilities computes the capability flags for a user's effective
// UI permissions.
func DeriveCapabilities(
	p UIPermissions,
) Capabilities {
	canManageReleases := p.Allows(AreaReleases, PermManage)
	canManageDevices := p.Allows(AreaDevices, PermManage)
	canWriteDevices := canManageDevices || p.Allows(AreaGroups, PermManage)

	return Capabilities{
		CanAuditlog:        p.Allows(AreaAuditlog, PermRead),
		CanConfigure:       p.Allows(AreaGroups, PermConfigure),
		CanDeploy:          p.Allows(AreaDeployments, PermDeploy) || p.Allows(AreaGroups, PermDeploy),
		CanManageDevices:   canManageDevices,
		CanManageReleases:  canManageReleases,
		CanManageUsers:     p.Allows(AreaUsers, PermManage),
		CanReadDeployments: p.Allows(AreaDeployments, PermRead),
		CanReadDevices:     p.Allows(AreaDevices, PermRead) || p.Allows(AreaGroups, PermRead),
		CanReadReleases:    p.Allows(AreaReleases, PermRead),
		CanReadUsers:       p.Allows(AreaUsers, PermRead),
		CanTroubleshoot:    p.Allows(AreaGroups, PermConnect),
		CanUploadReleases:  canManageReleases || p.Allows(AreaReleases, PermUpload),
		CanWriteDevices:    canWriteDevices,
	}
}
