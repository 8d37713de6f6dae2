package sqlinline

const QSelectEntitlement = `--sql 75dedcbc-332e-4879-a75f-85349357649d
select doc, updated_at
from entitlements
where uid = $1::text;
`

// QMergeEntitlement folds a grant patch into the user's document. The merge
// only ever adds fields; purchaseStatus is merged key-wise so an advanced
// grant cannot clobber an earlier styles grant.
const QMergeEntitlement = `--sql 6a7d0274-54ec-459c-8ecb-04981f785316
insert into entitlements (uid, doc, created_at, updated_at)
values ($1::text, $2::jsonb, now(), now())
on conflict (uid) do update set
    doc = (entitlements.doc || ($2::jsonb - 'purchaseStatus'))
          || jsonb_build_object(
                 'purchaseStatus',
                 coalesce(entitlements.doc->'purchaseStatus', '{}'::jsonb)
                 || coalesce($2::jsonb->'purchaseStatus', '{}'::jsonb)
             ),
    updated_at = now();
`

const QListEntitlements = `--sql b1a6b330-4242-4bc6-a0ea-e80430ffc930
select uid, doc
from entitlements
order by uid;
`
