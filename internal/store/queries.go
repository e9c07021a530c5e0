package store

const (
	deleteSnapshotQuery = `
		MATCH (s:Snapshot {name: $name})
		OPTIONAL MATCH (e:Entity {snapshot_id: s.id})
		DETACH DELETE s, e
	`

	createSnapshotQuery = `
		CREATE (s:Snapshot {
			id: $id,
			name: $name,
			saved_at: $saved_at,
			node_count: $node_count,
			link_count: $link_count
		})
		RETURN s.id AS id
	`

	saveNodesQuery = `
		UNWIND $nodes AS node
		CREATE (e:Entity {
			snapshot_id: $snapshot_id,
			id: node.id,
			name: node.name,
			type: node.type,
			description: node.description,
			val: node.val,
			color: node.color
		})
	`

	saveLinksQuery = `
		UNWIND $links AS link
		MATCH (src:Entity {snapshot_id: $snapshot_id, id: link.source})
		MATCH (dst:Entity {snapshot_id: $snapshot_id, id: link.target})
		CREATE (src)-[:REL {relationship: link.relationship}]->(dst)
	`

	getSnapshotQuery = `
		MATCH (s:Snapshot {name: $name})
		RETURN s.id AS id, s.name AS name, s.saved_at AS saved_at,
			s.node_count AS node_count, s.link_count AS link_count
	`

	loadNodesQuery = `
		MATCH (e:Entity {snapshot_id: $snapshot_id})
		RETURN e.id AS id, e.name AS name, e.type AS type,
			e.description AS description, e.val AS val, e.color AS color
		ORDER BY e.id
	`

	loadLinksQuery = `
		MATCH (src:Entity {snapshot_id: $snapshot_id})-[r:REL]->(dst:Entity {snapshot_id: $snapshot_id})
		RETURN src.id AS source, dst.id AS target, r.relationship AS relationship
		ORDER BY source, relationship, target
	`

	listSnapshotsQuery = `
		MATCH (s:Snapshot)
		RETURN s.id AS id, s.name AS name, s.saved_at AS saved_at,
			s.node_count AS node_count, s.link_count AS link_count
		ORDER BY s.saved_at DESC
	`
)

var indexQueries = []string{
	"CREATE INDEX ON :Snapshot(name);",
	"CREATE INDEX ON :Entity(snapshot_id);",
	"CREATE INDEX ON :Entity(id);",
}
